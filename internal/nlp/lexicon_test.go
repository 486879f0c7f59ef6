package nlp

import "testing"

func TestLexicon(t *testing.T) {
	lex := NewLexicon("Reuters", "  ")

	tests := []struct {
		token       string
		stopword    bool
		punctuation bool
	}{
		{"the", true, false},
		{"and", true, false},
		{"reuters", true, false},
		{"budget", false, false},
		{".", false, true},
		{",", false, true},
		{"\n", false, true},
		{"—", false, true},
		{"..", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := lex.IsStopword(tt.token); got != tt.stopword {
				t.Errorf("IsStopword(%q) = %v, want %v", tt.token, got, tt.stopword)
			}
			if got := lex.IsPunctuation(tt.token); got != tt.punctuation {
				t.Errorf("IsPunctuation(%q) = %v, want %v", tt.token, got, tt.punctuation)
			}
			if got := lex.Excluded(tt.token); got != (tt.stopword || tt.punctuation) {
				t.Errorf("Excluded(%q) = %v", tt.token, got)
			}
		})
	}
}
