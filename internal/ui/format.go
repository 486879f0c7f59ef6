package ui

import (
	"time"
)

// Formatter は表示設定に従って値を整形する
type Formatter struct {
	Location       *time.Location
	DateTimeFormat string
	TitleMaxWidth  int
}

// FormatTime は日時を表示用に整形する。ゼロ値は "-" を返す
func (f *Formatter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	format := f.DateTimeFormat
	if format == "" {
		format = "2006-01-02 15:04"
	}
	return t.In(loc).Format(format)
}

// FormatTitle はタイトルを最大幅で切り詰める
func (f *Formatter) FormatTitle(title string) string {
	return Truncate(title, f.TitleMaxWidth)
}
