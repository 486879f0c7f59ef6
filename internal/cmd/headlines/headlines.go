package headlines

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/debug"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/ui"
)

var HeadlinesCmd = &cobra.Command{
	Use:     "headlines [query]",
	Aliases: []string{"ls"},
	Short:   "List news headlines",
	Long: `List news headlines from the configured provider.

The provider is selected with news.provider: newsapi (default), feeds or all.

Examples:
  newsum headlines
  newsum headlines climate
  newsum headlines --limit 5 --digest
  newsum headlines -o json --jq '.[].url'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHeadlines,
}

var (
	limit     int
	digestAll bool
	jqFilter  string
)

func init() {
	HeadlinesCmd.Flags().IntVarP(&limit, "limit", "L", 0, "Maximum number of headlines to show")
	HeadlinesCmd.Flags().BoolVar(&digestAll, "digest", false, "Download and summarize every listed article")
	HeadlinesCmd.Flags().StringVar(&jqFilter, "jq", "", "Filter JSON output using a jq expression")
}

func runHeadlines(c *cobra.Command, args []string) error {
	cfg, err := cmdutil.GetConfigStore(c)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	svc, err := cmdutil.NewService(cfg)
	if err != nil {
		return err
	}

	ctx := c.Context()
	headlines, err := svc.Headlines(ctx, query)
	if err != nil {
		return err
	}
	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}

	display := cfg.Display()
	formatter := &ui.Formatter{
		Location:       display.Location(),
		DateTimeFormat: display.DateTimeFormat,
		TitleMaxWidth:  display.TitleMaxWidth,
	}
	opts := cmdutil.OutputOptions{Format: display.Output, JQFilter: jqFilter}
	out := c.OutOrStdout()

	if !digestAll {
		return cmdutil.Output(out, headlines, opts, func(w io.Writer) error {
			renderTable(w, headlines, formatter)
			return nil
		})
	}

	start := time.Now()
	digests, err := svc.DigestAll(ctx, headlines, cfg.Article().Concurrency)
	if err != nil {
		return err
	}
	debug.Since("digests built", start, "count", len(digests))

	return cmdutil.Output(out, digests, opts, func(w io.Writer) error {
		renderDigests(w, digests, formatter)
		return nil
	})
}

func renderTable(w io.Writer, headlines []news.Headline, f *ui.Formatter) {
	if len(headlines) == 0 {
		_, _ = fmt.Fprintln(w, "No headlines found")
		return
	}

	table := ui.NewTable("PUBLISHED", "SOURCE", "TITLE", "URL")
	for _, h := range headlines {
		table.AddRow(
			f.FormatTime(h.PublishedAt),
			ui.SourceColor(h.Source),
			f.FormatTitle(h.Title),
			ui.Gray(h.URL),
		)
	}
	table.RenderWithColor(w, ui.IsColorEnabled())
}

func renderDigests(w io.Writer, digests []digest.Digest, f *ui.Formatter) {
	for i, d := range digests {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		if d.Headline != nil {
			_, _ = fmt.Fprintf(w, "%s  %s\n", ui.Bold(d.Headline.Title), ui.SourceColor(d.Headline.Source))
			_, _ = fmt.Fprintf(w, "%s  %s\n", ui.Gray(f.FormatTime(d.Headline.PublishedAt)), ui.Gray(d.Headline.URL))
		}
		if d.Error != "" {
			_, _ = fmt.Fprintln(w, ui.Red("! "+d.Error))
			continue
		}
		_, _ = fmt.Fprintln(w, strings.TrimSpace(d.Summary))
	}
}
