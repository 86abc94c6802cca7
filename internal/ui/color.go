package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var colorEnabled = true

func init() {
	// 色が使えるかチェック
	colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColorEnabled は色の有効/無効を設定する
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsColorEnabled は色が有効かどうかを返す
func IsColorEnabled() bool {
	return colorEnabled
}

// ApplyColorMode は display.color の値（auto / always / never）を反映する
// auto は端末判定の結果をそのまま使う
func ApplyColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "never":
		SetColorEnabled(false)
	case "always":
		SetColorEnabled(true)
	}
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + reset
}

// Bold は太字にする
func Bold(s string) string {
	return paint(bold, s)
}

// Red は赤色にする
func Red(s string) string {
	return paint(red, s)
}

// Yellow は黄色にする
func Yellow(s string) string {
	return paint(yellow, s)
}

// BoldBlue は太字の青色にする（課題キーの見出し用）
func BoldBlue(s string) string {
	return paint(bold+blue, s)
}

// Cyan はシアン色にする
func Cyan(s string) string {
	return paint(cyan, s)
}

// Error はエラーメッセージを出力する
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Red("✗ ")+format+"\n", args...)
}

// Warning は警告メッセージを出力する
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Yellow("! ")+format+"\n", args...)
}
