package nlp

import (
	"regexp"
	"strings"
)

// Token は単語または記号1つ分の単位
type Token struct {
	// 原文の表記
	Text string
	// 小文字化した表記（頻度計算のキー）
	Norm string
}

// Sentence は文とそのトークン列
type Sentence struct {
	Index  int
	Text   string
	Tokens []Token
}

// Document はトークナイズ済みのテキスト
type Document struct {
	Sentences []Sentence
}

// Len は文の数を返す
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Sentences)
}

// Tokens は全ての文のトークンを出現順に返す
func (d *Document) Tokens() []Token {
	if d == nil {
		return nil
	}
	var tokens []Token
	for _, s := range d.Sentences {
		tokens = append(tokens, s.Tokens...)
	}
	return tokens
}

// 単語（内部のアポストロフィ・ハイフン・ピリオドを含む）か、空白以外の記号1文字
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’.\-][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)

// SplitWords は文を単語と記号のトークンに分割する
func SplitWords(text string) []Token {
	matches := tokenPattern.FindAllString(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{Text: m, Norm: strings.ToLower(m)})
	}
	return tokens
}

// WordCount は空白区切りの単語数を返す
func WordCount(text string) int {
	return len(strings.Fields(text))
}
