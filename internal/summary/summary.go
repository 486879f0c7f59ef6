// Package summary は頻度ベースの抽出型要約を提供する
package summary

import (
	"sort"
	"strings"

	"github.com/newsdigest/newsum/internal/nlp"
)

// Tokenizer はテキストを文と単語に分割する
// 通常は nlp.Model を渡す。テストではモックに差し替える
type Tokenizer interface {
	Tokenize(text string) (*nlp.Document, error)
}

// Lexicon は頻度計算から除外するトークンを判定する
type Lexicon interface {
	Excluded(token string) bool
}

// Engine は要約エンジンの共通インターフェース
type Engine interface {
	Summarize(text string) (string, error)
}

// Result は要約結果とスコアリングの詳細
type Result struct {
	Summary string `json:"summary"`
	// 短いテキストのため要約せずそのまま返した場合 true
	Passthrough   bool `json:"passthrough"`
	SentenceCount int  `json:"sentence_count"`
	// 選ばれた文の位置（出力順）
	Selected    []int           `json:"selected"`
	Scores      []float64       `json:"scores,omitempty"`
	Frequencies WordFrequencies `json:"-"`
}

// Summarizer は単語頻度で文をスコアリングし、上位の文を抽出する
// 状態を持たないため並行に使用できる
type Summarizer struct {
	tokenizer Tokenizer
	lexicon   Lexicon
	settings  settings
}

// New は Summarizer を作成する
func New(tokenizer Tokenizer, lexicon Lexicon, opts ...Option) (*Summarizer, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Summarizer{
		tokenizer: tokenizer,
		lexicon:   lexicon,
		settings:  s,
	}, nil
}

// Summarize はテキストの要約を返す
func (s *Summarizer) Summarize(text string) (string, error) {
	res, err := s.Analyze(text)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// Analyze はテキストを要約し、スコアリングの詳細とともに返す
func (s *Summarizer) Analyze(text string) (*Result, error) {
	if nlp.WordCount(text) < s.settings.minWords {
		return &Result{Summary: text, Passthrough: true}, nil
	}

	doc, err := s.tokenizer.Tokenize(text)
	if err != nil {
		return nil, &TokenizationError{Err: err}
	}

	res := &Result{SentenceCount: doc.Len()}
	if doc.Len() == 0 {
		return res, nil
	}

	res.Frequencies = BuildWordFrequencies(doc, s.lexicon)
	res.Scores = ScoreSentences(doc, res.Frequencies)
	res.Selected = selectTop(res.Scores, SelectionLength(doc.Len(), s.settings.ratio))
	if s.settings.order == OrderDocument {
		sort.Ints(res.Selected)
	}

	parts := make([]string, 0, len(res.Selected))
	for _, i := range res.Selected {
		parts = append(parts, strings.TrimSpace(doc.Sentences[i].Text))
	}
	res.Summary = strings.Join(parts, " ")
	return res, nil
}
