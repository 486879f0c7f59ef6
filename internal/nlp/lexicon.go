package nlp

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Punctuation は頻度計算から除外する記号（ASCII記号と改行）
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" + "\n"

// typographic は英文記事でよく使われる非ASCIIの記号
const typographic = "“”‘’–—…«»"

// Lexicon はストップワードと記号の固定集合
// 構築後は読み取り専用
type Lexicon struct {
	extraStopwords map[string]struct{}
	punctuation    map[string]struct{}
}

// NewLexicon は英語のストップワードに追加語を加えた語彙を作成する
func NewLexicon(extraStopwords ...string) *Lexicon {
	l := &Lexicon{
		extraStopwords: make(map[string]struct{}, len(extraStopwords)),
		punctuation:    make(map[string]struct{}),
	}
	for _, w := range extraStopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			l.extraStopwords[w] = struct{}{}
		}
	}
	for _, r := range Punctuation + typographic {
		l.punctuation[string(r)] = struct{}{}
	}
	return l
}

// IsStopword は小文字化済みの単語がストップワードかどうかを返す
func (l *Lexicon) IsStopword(word string) bool {
	if _, ok := l.extraStopwords[word]; ok {
		return true
	}
	return english.IsStopWord(word)
}

// IsPunctuation はトークンが記号1文字そのものかどうかを返す
func (l *Lexicon) IsPunctuation(token string) bool {
	_, ok := l.punctuation[token]
	return ok
}

// Excluded は頻度計算から除外するトークンかどうかを返す
func (l *Lexicon) Excluded(norm string) bool {
	return l.IsPunctuation(norm) || l.IsStopword(norm)
}
