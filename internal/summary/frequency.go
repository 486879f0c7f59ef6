package summary

import (
	"math"
	"sort"

	"github.com/newsdigest/newsum/internal/nlp"
)

// WordFrequencies は正規化済みの単語頻度表
// 値は最大出現回数で割った (0, 1] の値
type WordFrequencies map[string]float64

// BuildWordFrequencies は除外対象以外のトークンを小文字で数え、最大値で正規化する
func BuildWordFrequencies(doc *nlp.Document, lex Lexicon) WordFrequencies {
	counts := make(map[string]int)
	maxCount := 0
	for _, tok := range doc.Tokens() {
		if lex.Excluded(tok.Norm) {
			continue
		}
		counts[tok.Norm]++
		if counts[tok.Norm] > maxCount {
			maxCount = counts[tok.Norm]
		}
	}

	freq := make(WordFrequencies, len(counts))
	if maxCount == 0 {
		return freq
	}
	for word, n := range counts {
		freq[word] = float64(n) / float64(maxCount)
	}
	return freq
}

// ScoreSentences は各文のトークンの頻度を合計したスコアを文の位置順に返す
// 頻度表にないトークンは 0 として扱う
func ScoreSentences(doc *nlp.Document, freq WordFrequencies) []float64 {
	scores := make([]float64, doc.Len())
	for i, s := range doc.Sentences {
		for _, tok := range s.Tokens {
			scores[i] += freq[tok.Norm]
		}
	}
	return scores
}

// SelectionLength は n 文から選ぶ文の数 floor(ratio*n) を返す
// 文が1つ以上あれば最低1文を選ぶ
func SelectionLength(n int, ratio float64) int {
	if n <= 0 {
		return 0
	}
	k := int(math.Floor(ratio * float64(n)))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

// selectTop はスコア上位 k 文の位置をスコアの降順で返す
// 同点の場合は原文で先に出現した文を優先する
func selectTop(scores []float64, k int) []int {
	positions := make([]int, len(scores))
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		return scores[positions[a]] > scores[positions[b]]
	})
	if k > len(positions) {
		k = len(positions)
	}
	return positions[:k]
}
