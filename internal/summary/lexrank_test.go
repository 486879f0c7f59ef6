package summary

import (
	"errors"
	"strings"
	"testing"

	"github.com/newsdigest/newsum/internal/nlp"
)

const transitArticle = `The city council approved a new transit budget on Monday.
The budget adds three bus routes connecting the northern suburbs to downtown.
Council members said the transit budget was the largest in a decade.
Opponents argued the bus routes would not reduce traffic downtown.
The mayor promised that the new routes would start running in the spring.
Transit officials will hold public meetings about the routes next month.
Local businesses welcomed the budget and the new bus service.
Weather forecasters expect a mild winter this year.`

// splitSummary は summary を sentences の並びに分解する
// 原文の文以外が含まれていれば false を返す
func splitSummary(summary string, sentences []string) ([]string, bool) {
	var parts []string
	rest := summary
	for rest != "" {
		matched := ""
		for _, s := range sentences {
			if strings.HasPrefix(rest, s) && len(s) > len(matched) {
				matched = s
			}
		}
		if matched == "" {
			return nil, false
		}
		parts = append(parts, matched)
		rest = strings.TrimPrefix(rest[len(matched):], " ")
	}
	return parts, true
}

func TestLexRankSummarize(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		opts    []Option
		wantErr bool
		check   func(t *testing.T, text, summary string)
	}{
		{
			name: "empty text",
			text: "",
			check: func(t *testing.T, _, summary string) {
				if summary != "" {
					t.Errorf("expected empty summary, got %q", summary)
				}
			},
		},
		{
			name: "short text",
			text: "This is a short text.",
			check: func(t *testing.T, text, summary string) {
				if summary != text {
					t.Errorf("expected passthrough, got %q", summary)
				}
			},
		},
		{
			name: "punctuation only sentences are dropped",
			text: "... ... Only this sentence has words.",
			opts: []Option{WithMinWords(1)},
			check: func(t *testing.T, _, summary string) {
				if summary != "Only this sentence has words." {
					t.Errorf("unexpected summary %q", summary)
				}
			},
		},
		{
			name: "long article",
			text: transitArticle,
			check: func(t *testing.T, text, summary string) {
				var sentences []string
				for _, line := range strings.Split(text, "\n") {
					sentences = append(sentences, strings.TrimSpace(line))
				}
				parts, ok := splitSummary(summary, sentences)
				if !ok {
					t.Fatalf("summary is not made of input sentences: %q", summary)
				}
				if len(parts) != 2 {
					t.Errorf("selected %d sentences, want 2: %q", len(parts), summary)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewLexRank(&periodTokenizer{}, tt.opts...)
			if err != nil {
				t.Fatalf("NewLexRank() error = %v", err)
			}
			got, err := engine.Summarize(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("Summarize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.check != nil {
				tt.check(t, tt.text, got)
			}
		})
	}
}

func TestLexRankWithModel(t *testing.T) {
	model, err := nlp.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer func() { _ = model.Close() }()

	tests := []struct {
		name string
		text string
		opts []Option
	}{
		{
			name: "plain sentences",
			text: transitArticle,
		},
		{
			name: "abbreviations",
			text: `Dr. Maria Lopez arrived in the U.S. capital on Tuesday for the climate talks.
Delegates from forty countries joined Dr. Lopez at the opening session.
The talks focus on emissions targets for heavy industry and shipping.
Mr. Chen of the shipping council said new fuel rules would raise costs.
Environmental groups urged the delegates to agree on firm targets.
Dr. Lopez said the U.S. delegation would present a draft agreement on Friday.
Observers expect the talks to continue through the weekend.
Hotels near the conference center reported full bookings all week.`,
		},
		{
			name: "decimals and exclamations",
			text: `The central bank raised its key rate to 3.5 percent on Thursday.
Markets had expected an increase of 0.25 points, not 0.5 points!
Analysts said the 3.5 percent rate was the highest in twelve years.
Mortgage lenders quickly raised their rates by 0.4 percent.
Why did the bank move so fast? Inflation reached 6.2 percent in March.
The bank said it would review the rate again in June.
Retail shares fell 1.8 percent after the announcement.
Some economists warned that growth could slow to 0.9 percent.`,
			opts: []Option{WithRatio(0.4), WithOrder(OrderScore)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(AlgorithmLexRank, model, nlp.NewLexicon(), tt.opts...)
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			got, err := engine.Summarize(tt.text)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}

			doc, err := model.Tokenize(tt.text)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			sentences := make([]string, 0, doc.Len())
			for _, s := range doc.Sentences {
				sentences = append(sentences, strings.TrimSpace(s.Text))
			}

			parts, ok := splitSummary(got, sentences)
			if !ok {
				t.Fatalf("summary is not made of input sentences: %q", got)
			}
			ratio := DefaultRatio
			if len(tt.opts) > 0 {
				ratio = 0.4
			}
			if want := SelectionLength(len(sentences), ratio); len(parts) != want {
				t.Errorf("selected %d sentences, want %d: %q", len(parts), want, got)
			}
		})
	}
}

func TestLexRankOrder(t *testing.T) {
	document, err := NewLexRank(&periodTokenizer{}, WithRatio(0.5))
	if err != nil {
		t.Fatalf("NewLexRank() error = %v", err)
	}
	byScore, err := NewLexRank(&periodTokenizer{}, WithRatio(0.5), WithOrder(OrderScore))
	if err != nil {
		t.Fatalf("NewLexRank() error = %v", err)
	}

	docSum, err := document.Summarize(transitArticle)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	scoreSum, err := byScore.Summarize(transitArticle)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	var sentences []string
	for _, line := range strings.Split(transitArticle, "\n") {
		sentences = append(sentences, strings.TrimSpace(line))
	}
	docParts, ok := splitSummary(docSum, sentences)
	if !ok {
		t.Fatalf("summary is not made of input sentences: %q", docSum)
	}
	scoreParts, ok := splitSummary(scoreSum, sentences)
	if !ok {
		t.Fatalf("summary is not made of input sentences: %q", scoreSum)
	}

	position := func(s string) int {
		for i, v := range sentences {
			if v == s {
				return i
			}
		}
		return -1
	}
	for i := 1; i < len(docParts); i++ {
		if position(docParts[i-1]) > position(docParts[i]) {
			t.Errorf("document order summary is out of order: %q", docSum)
		}
	}

	// 同じ文集合を選び、並び順だけが異なる
	if len(docParts) != len(scoreParts) {
		t.Fatalf("len = %d and %d", len(docParts), len(scoreParts))
	}
	seen := make(map[string]bool)
	for _, p := range docParts {
		seen[p] = true
	}
	for _, p := range scoreParts {
		if !seen[p] {
			t.Errorf("score order selected %q which document order did not", p)
		}
	}
}

func TestLexRankTokenizationError(t *testing.T) {
	cause := errors.New("boom")
	engine, err := NewLexRank(failingTokenizer{err: cause}, WithMinWords(1))
	if err != nil {
		t.Fatalf("NewLexRank() error = %v", err)
	}

	_, err = engine.Summarize("Some text.")
	var tokErr *TokenizationError
	if !errors.As(err, &tokErr) {
		t.Fatalf("Summarize() error = %v, want *TokenizationError", err)
	}
}
