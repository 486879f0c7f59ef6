package summary

import "fmt"

// アルゴリズム名
const (
	AlgorithmFrequency = "frequency"
	AlgorithmLexRank   = "lexrank"
)

// NewEngine はアルゴリズム名から要約エンジンを作成する
func NewEngine(algorithm string, tokenizer Tokenizer, lexicon Lexicon, opts ...Option) (Engine, error) {
	switch algorithm {
	case "", AlgorithmFrequency:
		s, err := New(tokenizer, lexicon, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case AlgorithmLexRank:
		l, err := NewLexRank(tokenizer, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("%w: unknown summary algorithm %q (expected %s or %s)", ErrInvalidOptions, algorithm, AlgorithmFrequency, AlgorithmLexRank)
	}
}
