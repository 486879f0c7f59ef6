package summary

import (
	"testing"

	"github.com/newsdigest/newsum/internal/nlp"
)

func TestBuildWordFrequencies(t *testing.T) {
	doc, _ := (&periodTokenizer{}).Tokenize("Rain, rain and more rain. The rain stopped.")
	freq := BuildWordFrequencies(doc, setLexicon{"and": true, "the": true})

	want := map[string]float64{
		"rain":    1,
		"more":    0.25,
		"stopped": 0.25,
	}
	if len(freq) != len(want) {
		t.Fatalf("len(freq) = %d, want %d: %v", len(freq), len(want), freq)
	}
	for word, v := range want {
		if freq[word] != v {
			t.Errorf("freq[%q] = %v, want %v", word, freq[word], v)
		}
	}
	for _, excluded := range []string{",", ".", "and", "the", "Rain"} {
		if _, ok := freq[excluded]; ok {
			t.Errorf("freq contains %q", excluded)
		}
	}
}

func TestBuildWordFrequenciesEmpty(t *testing.T) {
	doc, _ := (&periodTokenizer{}).Tokenize("The. The.")
	freq := BuildWordFrequencies(doc, setLexicon{"the": true})
	if len(freq) != 0 {
		t.Errorf("freq = %v, want empty", freq)
	}
	scores := ScoreSentences(doc, freq)
	for i, s := range scores {
		if s != 0 {
			t.Errorf("scores[%d] = %v, want 0", i, s)
		}
	}
}

func TestScoreSentences(t *testing.T) {
	doc := &nlp.Document{Sentences: []nlp.Sentence{
		{Index: 0, Text: "a b", Tokens: nlp.SplitWords("a b")},
		{Index: 1, Text: "b b c", Tokens: nlp.SplitWords("b b c")},
		{Index: 2, Text: "z", Tokens: nlp.SplitWords("z")},
	}}
	freq := WordFrequencies{"a": 0.5, "b": 1, "c": 0.25}

	got := ScoreSentences(doc, freq)
	want := []float64{1.5, 2.25, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scores[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectionLength(t *testing.T) {
	tests := []struct {
		n     int
		ratio float64
		want  int
	}{
		{0, 0.25, 0},
		{1, 0.25, 1},
		{3, 0.25, 1},
		{4, 0.25, 1},
		{8, 0.25, 2},
		{11, 0.25, 2},
		{100, 0.25, 25},
		{5, 1, 5},
	}
	for _, tt := range tests {
		if got := SelectionLength(tt.n, tt.ratio); got != tt.want {
			t.Errorf("SelectionLength(%d, %v) = %d, want %d", tt.n, tt.ratio, got, tt.want)
		}
	}
}

func TestSelectTopTieBreak(t *testing.T) {
	scores := []float64{1, 3, 3, 0, 3}
	got := selectTop(scores, 3)
	want := []int{1, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selectTop() = %v, want %v", got, want)
		}
	}
}
