package summarize

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/ui"
)

var SummarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize text from a file or stdin",
	Long: `Summarize text from a file or standard input.

Texts shorter than summary.min_words words are printed unchanged.

Examples:
  newsum summarize article.txt
  cat article.txt | newsum summarize
  newsum summarize --ratio 0.4 --order score article.txt
  newsum summarize --stats -o json article.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

var (
	algorithm string
	ratio     float64
	minWords  int
	order     string
	showStats bool
	jqFilter  string
)

func init() {
	SummarizeCmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Summary algorithm (frequency, lexrank)")
	SummarizeCmd.Flags().Float64VarP(&ratio, "ratio", "r", 0, "Fraction of sentences to keep (0-1]")
	SummarizeCmd.Flags().IntVar(&minWords, "min-words", 0, "Texts with fewer words are returned unchanged")
	SummarizeCmd.Flags().StringVar(&order, "order", "", "Sentence order (document, score)")
	SummarizeCmd.Flags().BoolVar(&showStats, "stats", false, "Print sentence counts to stderr")
	SummarizeCmd.Flags().StringVar(&jqFilter, "jq", "", "Filter JSON output using a jq expression")
}

// Result は summarize コマンドの構造化出力
type Result struct {
	Summary string       `json:"summary"`
	Stats   digest.Stats `json:"stats"`
}

func runSummarize(c *cobra.Command, args []string) error {
	cfg, err := cmdutil.GetConfigStore(c)
	if err != nil {
		return err
	}

	// 指定されたフラグを Args レイヤーに反映
	flags := []struct {
		name  string
		path  string
		value any
	}{
		{"algorithm", config.PathSummaryAlgorithm, algorithm},
		{"ratio", config.PathSummaryRatio, ratio},
		{"min-words", config.PathSummaryMinWords, minWords},
		{"order", config.PathSummaryOrder, order},
	}
	for _, f := range flags {
		if !c.Flags().Changed(f.name) {
			continue
		}
		if err := cfg.SetFlag(f.path, f.value); err != nil {
			return fmt.Errorf("failed to apply --%s: %w", f.name, err)
		}
	}

	text, err := cmdutil.ReadInput(args, c.InOrStdin())
	if err != nil {
		return err
	}

	engine, err := cmdutil.NewEngine(cfg, "")
	if err != nil {
		return err
	}
	sum, stats, err := digest.SummarizeWith(engine, text)
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	err = cmdutil.Output(out, Result{Summary: sum, Stats: stats},
		cmdutil.OutputOptions{Format: cfg.Display().Output, JQFilter: jqFilter},
		func(w io.Writer) error {
			_, err := fmt.Fprintln(w, strings.TrimRight(sum, "\n"))
			return err
		})
	if err != nil {
		return err
	}

	if showStats {
		printStats(c.ErrOrStderr(), stats)
	}
	return nil
}

func printStats(w io.Writer, stats digest.Stats) {
	if stats.Passthrough {
		_, _ = fmt.Fprintln(w, ui.Gray("text is shorter than the minimum word count; returned unchanged"))
		return
	}
	_, _ = fmt.Fprintln(w, ui.Gray(fmt.Sprintf("selected %d of %d sentences", stats.SelectedCount, stats.SentenceCount)))
}
