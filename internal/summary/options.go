package summary

import (
	"fmt"
	"strings"
)

const (
	// DefaultMinWords 未満の単語数のテキストは要約せずそのまま返す
	DefaultMinWords = 50
	// DefaultRatio は選択する文の割合
	DefaultRatio = 0.25
)

// Order は要約に含める文の並び順
type Order string

const (
	// OrderDocument は選ばれた文を原文の順に並べる
	OrderDocument Order = "document"
	// OrderScore は選ばれた文をスコアの高い順に並べる（同点は原文で先の文）
	OrderScore Order = "score"
)

// ParseOrder は設定値から Order を解決する
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderDocument:
		return OrderDocument, nil
	case OrderScore:
		return OrderScore, nil
	default:
		return "", fmt.Errorf("%w: invalid summary order %q (expected %s or %s)", ErrInvalidOptions, s, OrderDocument, OrderScore)
	}
}

type settings struct {
	minWords int
	ratio    float64
	order    Order
}

func defaultSettings() settings {
	return settings{
		minWords: DefaultMinWords,
		ratio:    DefaultRatio,
		order:    OrderDocument,
	}
}

func (s settings) validate() error {
	if s.minWords < 0 {
		return fmt.Errorf("%w: min words must not be negative: %d", ErrInvalidOptions, s.minWords)
	}
	if s.ratio <= 0 || s.ratio > 1 {
		return fmt.Errorf("%w: ratio must be in (0, 1]: %v", ErrInvalidOptions, s.ratio)
	}
	if _, err := ParseOrder(string(s.order)); err != nil {
		return err
	}
	return nil
}

// Option は要約エンジンの設定オプション
type Option func(*settings)

// WithMinWords は要約を行う最小単語数を設定する
func WithMinWords(n int) Option {
	return func(s *settings) {
		s.minWords = n
	}
}

// WithRatio は選択する文の割合を設定する
func WithRatio(r float64) Option {
	return func(s *settings) {
		s.ratio = r
	}
}

// WithOrder は出力する文の並び順を設定する
func WithOrder(o Order) Option {
	return func(s *settings) {
		s.order = o
	}
}
