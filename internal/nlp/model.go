// Package nlp は英語テキストの文分割・単語分割と、要約で使う語彙リソースを提供する
package nlp

import (
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// ErrModelClosed は Close 済みのモデルで分割しようとした場合のエラー
var ErrModelClosed = errors.New("language model is closed")

// Model はプロセス単位で共有する英語トークナイザ
// Punkt の学習済みパラメータは Load で一度だけ読み込み、以降は読み取り専用で共有する
type Model struct {
	mu        sync.RWMutex
	sentences *sentences.DefaultSentenceTokenizer
}

// Load は英語の学習済みパラメータを読み込んでモデルを構築する
func Load() (*Model, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, errors.Wrap(err, "load english sentence tokenizer")
	}
	return &Model{sentences: tokenizer}, nil
}

// Close はモデルを解放する。以降の Tokenize は ErrModelClosed を返す
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentences = nil
	return nil
}

// Tokenize はテキストを文と単語に分割する
// 空白のみの文は捨て、Index は残った文の出現順で振り直す
func (m *Model) Tokenize(text string) (doc *Document, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.sentences == nil {
		return nil, ErrModelClosed
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = errors.Errorf("sentence tokenizer panic: %v", r)
		}
	}()

	text = norm.NFC.String(text)
	doc = &Document{}
	for _, s := range m.sentences.Tokenize(text) {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		doc.Sentences = append(doc.Sentences, Sentence{
			Index:  len(doc.Sentences),
			Text:   s.Text,
			Tokens: SplitWords(s.Text),
		})
	}
	return doc, nil
}
