package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Table はテーブル出力
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable は新しいテーブルを作成する
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// AddRow は行を追加する
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len は行数を返す
func (t *Table) Len() int {
	return len(t.rows)
}

// Render はテーブルを出力する
func (t *Table) Render(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// ヘッダー
	_, _ = fmt.Fprintln(tw, strings.Join(t.headers, "\t"))

	// 行
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	_ = tw.Flush()
}

// RenderWithColor は色付きでテーブルを出力する
// ANSIエスケープシーケンスを考慮してカラム幅を揃える
func (t *Table) RenderWithColor(w io.Writer, colorEnabled bool) {
	if !colorEnabled {
		t.Render(w)
		return
	}

	if w == nil {
		w = os.Stdout
	}

	colWidths := t.calculateColumnWidths()

	// ヘッダー出力（太字）
	for i, h := range t.headers {
		if i > 0 {
			_, _ = fmt.Fprint(w, "  ")
		}
		_, _ = fmt.Fprint(w, padRight(Bold(h), colWidths[i], displayWidth(h)))
	}
	_, _ = fmt.Fprintln(w)

	// 行出力
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				_, _ = fmt.Fprint(w, "  ")
			}
			// 最終カラムはパディングしない
			if i < len(colWidths) && i < len(row)-1 {
				_, _ = fmt.Fprint(w, padRight(cell, colWidths[i], displayWidth(cell)))
			} else {
				_, _ = fmt.Fprint(w, cell)
			}
		}
		_, _ = fmt.Fprintln(w)
	}
}

// calculateColumnWidths は各カラムの最大表示幅を計算する
func (t *Table) calculateColumnWidths() []int {
	if len(t.headers) == 0 {
		return nil
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := displayWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// ansiEscapeRegex はANSIエスケープシーケンスにマッチする正規表現
var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// displayWidth はANSIエスケープシーケンスを除いた表示幅を返す
// 全角文字は幅2としてカウント
func displayWidth(s string) int {
	clean := ansiEscapeRegex.ReplaceAllString(s, "")

	width := 0
	for _, r := range clean {
		width += runeWidth(r)
	}
	return width
}

// runeWidth は表示幅を返す
// 簡易的な判定: UTF-8で3バイト以上になるルーンを全角として扱う
func runeWidth(r rune) int {
	if utf8.RuneLen(r) >= 3 {
		return 2
	}
	return 1
}

// padRight は文字列を指定幅まで右側にスペースでパディングする
// currentWidth は現在の表示幅（ANSIエスケープシーケンスを除いた幅）
func padRight(s string, targetWidth, currentWidth int) string {
	if currentWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-currentWidth)
}

// Truncate は文字列を表示幅 max に収まるよう切り詰める
// 切り詰めた場合は末尾を "..." にする
func Truncate(s string, max int) string {
	if max <= 0 || displayWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:min(max, utf8.RuneCountInString(s))])
	}

	var sb strings.Builder
	width := 0
	for _, r := range s {
		w := runeWidth(r)
		if width+w > max-3 {
			break
		}
		sb.WriteRune(r)
		width += w
	}
	return sb.String() + "..."
}
