package nlp

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestModelTokenize(t *testing.T) {
	model, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer func() { _ = model.Close() }()

	text := "The council approved the budget on Monday. Critics said the plan was rushed. Officials disagreed."
	doc, err := model.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}

	wantFirst := "The council approved the budget on Monday."
	if got := strings.TrimSpace(doc.Sentences[0].Text); got != wantFirst {
		t.Errorf("Sentences[0] = %q, want %q", got, wantFirst)
	}
	for i, s := range doc.Sentences {
		if s.Index != i {
			t.Errorf("Sentences[%d].Index = %d", i, s.Index)
		}
	}

	last := doc.Sentences[2].Tokens
	if len(last) != 3 {
		t.Fatalf("len(tokens) = %d, want 3: %+v", len(last), last)
	}
	if last[0].Text != "Officials" || last[0].Norm != "officials" {
		t.Errorf("tokens[0] = %+v", last[0])
	}
	if last[2].Text != "." {
		t.Errorf("tokens[2] = %+v, want period", last[2])
	}
}

func TestModelTokenizeEmpty(t *testing.T) {
	model, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer func() { _ = model.Close() }()

	for _, text := range []string{"", "   ", "\n\n"} {
		doc, err := model.Tokenize(text)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", text, err)
		}
		if doc.Len() != 0 {
			t.Errorf("Tokenize(%q).Len() = %d, want 0", text, doc.Len())
		}
	}
}

func TestModelClose(t *testing.T) {
	model, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := model.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err = model.Tokenize("Anything at all.")
	if !errors.Is(err, ErrModelClosed) {
		t.Errorf("Tokenize() after Close error = %v, want ErrModelClosed", err)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "words and punctuation",
			text: "Hello, world!",
			want: []string{"Hello", ",", "world", "!"},
		},
		{
			name: "contraction and hyphen",
			text: "It's a well-known fact",
			want: []string{"It's", "a", "well-known", "fact"},
		},
		{
			name: "decimal number",
			text: "GDP grew 3.5 percent.",
			want: []string{"GDP", "grew", "3.5", "percent", "."},
		},
		{
			name: "quotes",
			text: "“Yes” he said",
			want: []string{"“", "Yes", "”", "he", "said"},
		},
		{
			name: "whitespace only",
			text: " \n\t ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := SplitWords(tt.text)
			got := make([]string, 0, len(tokens))
			for _, tok := range tokens {
				got = append(got, tok.Text)
				if tok.Norm != strings.ToLower(tok.Text) {
					t.Errorf("Norm = %q, want lowercase of %q", tok.Norm, tok.Text)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitWords(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  two\twords\n", 2},
		{"a b c d e", 5},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
