// Package ui はターミナル出力（色、テーブル、プロンプト）を扱う
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

// ApplyColorSetting は auto / always / never の設定を反映する
func ApplyColorSetting(setting string) {
	switch strings.ToLower(setting) {
	case "never":
		colorEnabled = false
	case "always":
		colorEnabled = true
	}
}

// IsInteractive は標準入力と標準出力がターミナルかどうかを返す
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
)

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + reset
}

// Bold は太字にする
func Bold(s string) string { return paint(bold, s) }

// Red は赤色にする
func Red(s string) string { return paint(red, s) }

// Green は緑色にする
func Green(s string) string { return paint(green, s) }

// Yellow は黄色にする
func Yellow(s string) string { return paint(yellow, s) }

// Blue は青色にする
func Blue(s string) string { return paint(blue, s) }

// Cyan はシアン色にする
func Cyan(s string) string { return paint(cyan, s) }

// Gray はグレーにする
func Gray(s string) string { return paint(gray, s) }

// SourceColor はニュースソース名に色を付ける
func SourceColor(source string) string {
	if source == "" {
		return Gray("-")
	}
	return Cyan(source)
}

// Success は成功メッセージを出力する
func Success(format string, args ...any) {
	fmt.Printf(Green("✓ ")+format+"\n", args...)
}

// Error はエラーメッセージを出力する
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, Red("✗ ")+format+"\n", args...)
}

// Warning は警告メッセージを出力する
func Warning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, Yellow("! ")+format+"\n", args...)
}

// Info は情報メッセージを出力する
func Info(format string, args ...any) {
	fmt.Printf(Blue("ℹ ")+format+"\n", args...)
}
