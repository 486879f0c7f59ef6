// Package news はニュース記事の一覧（見出し・リンク・サムネイル）を取得する
package news

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Headline は一覧に表示する記事の情報
type Headline struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Source      string    `json:"source,omitempty"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Source は見出しの取得元
type Source interface {
	Name() string
	Headlines(ctx context.Context, query string) ([]Headline, error)
}

// dedupeAndSort はURLで重複を除き、新しい順に並べる
// 日時のない見出しは末尾に回し、それ以外は元の順序を保つ
func dedupeAndSort(headlines []Headline) []Headline {
	seen := make(map[string]struct{}, len(headlines))
	out := make([]Headline, 0, len(headlines))
	for _, h := range headlines {
		if h.URL == "" {
			continue
		}
		if _, ok := seen[h.URL]; ok {
			continue
		}
		seen[h.URL] = struct{}{}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return out
}

// matchesQuery はタイトルか説明文にクエリが含まれるかを大文字小文字を区別せずに判定する
func matchesQuery(h Headline, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(h.Title), query) ||
		strings.Contains(strings.ToLower(h.Description), query)
}

// unavailableSource は設定不足などで利用できないソース
type unavailableSource struct {
	name string
	err  error
}

// Unavailable は常に err を返すソースを作成する
// APIキー未設定時の newsapi ソースの代わりに使う
func Unavailable(name string, err error) Source {
	return &unavailableSource{name: name, err: err}
}

func (u *unavailableSource) Name() string {
	return u.name
}

func (u *unavailableSource) Headlines(context.Context, string) ([]Headline, error) {
	return nil, u.err
}
