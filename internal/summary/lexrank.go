package summary

import (
	"sort"
	"strings"
	"unicode"

	"github.com/go-faster/errors"
	"github.com/ramenjuniti/lexrankmmr"

	"github.com/newsdigest/newsum/internal/nlp"
)

// lexrankmmr は「.」で文を区切り、「。!?！？」も「.」に置き換えてから分割する
const lexRankDelimiter = "."

const lexRankMaxCharacters = 100000

// 文中に残ると余計な区切りになる文字
var lexRankNeutralizer = strings.NewReplacer(
	".", " ",
	"!", " ",
	"?", " ",
	"。", " ",
	"！", " ",
	"？", " ",
)

// LexRank は LexRank + MMR による要約エンジン
// 文分割は Summarizer と同じトークナイザを使う
type LexRank struct {
	tokenizer Tokenizer
	settings  settings
}

// NewLexRank は LexRank エンジンを作成する
func NewLexRank(tokenizer Tokenizer, opts ...Option) (*LexRank, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &LexRank{tokenizer: tokenizer, settings: s}, nil
}

// Summarize はテキストの要約を返す
// 選ばれた文は原文のまま返す
func (l *LexRank) Summarize(text string) (string, error) {
	if nlp.WordCount(text) < l.settings.minWords {
		return text, nil
	}

	doc, err := l.tokenizer.Tokenize(text)
	if err != nil {
		return "", &TokenizationError{Err: err}
	}

	// 英数字を含まない文は TF-IDF ベクトルがゼロになるため除外する
	var originals, lines []string
	for _, s := range doc.Sentences {
		original := strings.TrimSpace(s.Text)
		line := strings.Join(strings.Fields(lexRankNeutralizer.Replace(original)), " ")
		if !hasWord(line) {
			continue
		}
		originals = append(originals, original)
		lines = append(lines, line)
	}
	switch len(lines) {
	case 0:
		return "", nil
	case 1:
		return originals[0], nil
	}

	data, err := lexrankmmr.New(
		lexrankmmr.MaxLines(SelectionLength(len(lines), l.settings.ratio)),
		lexrankmmr.MaxCharacters(lexRankMaxCharacters),
	)
	if err != nil {
		return "", errors.Wrap(err, "initialize lexrankmmr")
	}

	if err := data.Summarize(strings.Join(lines, lexRankDelimiter) + lexRankDelimiter); err != nil {
		return "", errors.Wrap(err, "lexrank summarize")
	}

	selected := data.LineLimitedSummary
	if l.settings.order == OrderScore {
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].Score > selected[j].Score
		})
	}

	summaries := make([]string, 0, len(selected))
	for _, score := range selected {
		if score.Id < 0 || score.Id >= len(originals) {
			return "", errors.Errorf("lexrank returned unknown sentence %d", score.Id)
		}
		summaries = append(summaries, originals[score.Id])
	}
	return strings.Join(summaries, " "), nil
}

func hasWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
