package news

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/newsdigest/newsum/internal/debug"
)

// Multi は複数のソースを並行に検索して結果をまとめる
type Multi struct {
	sources []Source
}

// NewMulti は Multi を作成する
func NewMulti(sources ...Source) *Multi {
	return &Multi{sources: sources}
}

// Name はソース名を返す
func (m *Multi) Name() string {
	return "all"
}

// Headlines は全てのソースの結果をURLで重複除去し、新しい順に返す
// 全てのソースが失敗した場合のみエラーを返す
func (m *Multi) Headlines(ctx context.Context, query string) ([]Headline, error) {
	if len(m.sources) == 0 {
		return nil, errors.New("no news sources configured")
	}

	results := make([][]Headline, len(m.sources))
	errs := make([]error, len(m.sources))

	// 各ゴルーチンは自分の添字にだけ書き込む
	var wg sync.WaitGroup
	for i, src := range m.sources {
		wg.Go(func() {
			results[i], errs[i] = src.Headlines(ctx, query)
		})
	}
	wg.Wait()

	var merged []Headline
	var firstErr error
	for i, err := range errs {
		if err != nil {
			debug.Log("news source failed", "source", m.sources[i].Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		merged = append(merged, results[i]...)
	}

	merged = dedupeAndSort(merged)
	if len(merged) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, errors.Wrapf(ErrNoArticles, "query %q", query)
	}
	return merged, nil
}
