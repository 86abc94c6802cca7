package worklog

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// 受け付ける日付フォーマット（DD.MM.YYYY / DD.MM.YYYY HH:MM）
var dateLayouts = []string{
	"02.01.2006",
	"02.01.2006 15:04",
}

// DisplayLayout はレポートに表示する日時のフォーマット
const DisplayLayout = "02.01.2006 15:04"

var (
	// ErrInvalidDate は日付の形式が不正な場合のエラー
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvertedWindow は --from が --to より後の場合のエラー
	ErrInvertedWindow = errors.New("--from is after --to")
)

// Window は集計対象の期間。ゼロ値の境界は無制限を表す
// 境界値そのものは期間に含まない
type Window struct {
	From time.Time
	To   time.Time
}

// Contains は t が (From, To) の開区間に含まれるかを返す
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && !t.After(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// NewWindow はフラグ文字列から期間を作成する
func NewWindow(from, to string) (Window, error) {
	f, err := ParseDate(from)
	if err != nil {
		return Window{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return Window{}, err
	}
	if !f.IsZero() && !t.IsZero() && f.After(t) {
		return Window{}, ErrInvertedWindow
	}
	return Window{From: f, To: t}, nil
}

// ParseDate は DD.MM.YYYY または DD.MM.YYYY HH:MM を壁時計時刻として解釈する
// 空文字はゼロ値（無制限）を返す
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q (expected DD.MM.YYYY or DD.MM.YYYY HH:MM)", s)
}

// WallClock はタイムゾーンのオフセットを捨て、表記上の日時をUTCとして返す
// トラッカーの時刻とフラグの時刻はこの形で比較する
func WallClock(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FormatSeconds は秒数を HH:MM:SS に整形する。時間は24を超えても繰り上げない
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds%60)
}
