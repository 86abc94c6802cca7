// Package worklog は課題のワークログを期間で振り分け、作成者ごとの作業時間を集計する
package worklog

import (
	"context"
	"time"
)

// Entry はトラッカーから取得した1件のワークログ
type Entry struct {
	Author  string
	Created time.Time
	Updated time.Time
	Seconds int
	Comment string
}

// Source は課題ごとのワークログ取得元
type Source interface {
	Worklogs(ctx context.Context, issue string) ([]Entry, error)
}

// LineKind は出力行の種別
type LineKind string

const (
	// LineNew は期間内に作成されたワークログ（合計に加算される）
	LineNew LineKind = "new"
	// LineChanged は期間外に作成され期間内に更新されたワークログ（合計には加算しない）
	LineChanged LineKind = "changed"
)

// Line はレポートの1行
type Line struct {
	Kind     LineKind  `json:"kind" yaml:"kind"`
	Author   string    `json:"author" yaml:"author"`
	Seconds  int       `json:"seconds" yaml:"seconds"`
	Duration string    `json:"duration" yaml:"duration"`
	Created  time.Time `json:"created" yaml:"created"`
	Updated  time.Time `json:"updated" yaml:"updated"`
	Comment  string    `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// AuthorTotal は作成者ごとの合計
type AuthorTotal struct {
	Author   string `json:"author" yaml:"author"`
	Seconds  int    `json:"seconds" yaml:"seconds"`
	Duration string `json:"duration" yaml:"duration"`
}

// IssueReport は1課題分の集計結果
type IssueReport struct {
	Issue  string        `json:"issue" yaml:"issue"`
	Lines  []Line        `json:"lines" yaml:"lines"`
	Totals []AuthorTotal `json:"totals" yaml:"totals"`
}

// HasNewTime は期間内に作成されたワークログがあったかを返す
func (r *IssueReport) HasNewTime() bool {
	return len(r.Totals) > 0
}

// NewComments は合計に加算されたワークログのコメントを返す
func (r *IssueReport) NewComments() []string {
	var comments []string
	for _, l := range r.Lines {
		if l.Kind == LineNew && l.Comment != "" {
			comments = append(comments, l.Comment)
		}
	}
	return comments
}

// Totals は作成者ごとの秒数を初出順に保持する
type Totals struct {
	order   []string
	seconds map[string]int
}

// Add は作成者の合計に秒数を加算する
func (t *Totals) Add(author string, seconds int) {
	if t.seconds == nil {
		t.seconds = make(map[string]int)
	}
	if _, ok := t.seconds[author]; !ok {
		t.order = append(t.order, author)
	}
	t.seconds[author] += seconds
}

// Len は作成者数を返す
func (t *Totals) Len() int {
	return len(t.order)
}

// Get は作成者の合計秒数を返す
func (t *Totals) Get(author string) int {
	return t.seconds[author]
}

// List は初出順の合計一覧を返す
func (t *Totals) List() []AuthorTotal {
	list := make([]AuthorTotal, 0, len(t.order))
	for _, author := range t.order {
		s := t.seconds[author]
		list = append(list, AuthorTotal{
			Author:   author,
			Seconds:  s,
			Duration: FormatSeconds(s),
		})
	}
	return list
}

// Aggregate は1課題分のワークログを期間で振り分けて集計する
//
// created が期間内なら合計に加算して new 行を出す。
// created が期間外で updated が期間内なら changed 行を出すが合計には加算しない。
// どちらも期間外なら何も出さない。
func Aggregate(issue string, entries []Entry, w Window) IssueReport {
	report := IssueReport{
		Issue: issue,
		Lines: []Line{},
	}

	var totals Totals
	for _, e := range entries {
		var kind LineKind
		switch {
		case w.Contains(e.Created):
			kind = LineNew
			totals.Add(e.Author, e.Seconds)
		case w.Contains(e.Updated):
			kind = LineChanged
		default:
			continue
		}

		report.Lines = append(report.Lines, Line{
			Kind:     kind,
			Author:   e.Author,
			Seconds:  e.Seconds,
			Duration: FormatSeconds(e.Seconds),
			Created:  e.Created,
			Updated:  e.Updated,
			Comment:  e.Comment,
		})
	}

	report.Totals = totals.List()
	return report
}

// Collect は課題を指定順に1件ずつ取得・集計し、fn に渡す
// 取得に失敗した時点で中断し、そのエラーをそのまま返す
func Collect(ctx context.Context, src Source, issues []string, w Window, fn func(IssueReport) error) error {
	for _, issue := range issues {
		entries, err := src.Worklogs(ctx, issue)
		if err != nil {
			return err
		}
		if err := fn(Aggregate(issue, entries, w)); err != nil {
			return err
		}
	}
	return nil
}
