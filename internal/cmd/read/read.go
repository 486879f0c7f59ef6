package read

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/ui"
)

var ReadCmd = &cobra.Command{
	Use:   "read [url]",
	Short: "Download an article and print its summary",
	Long: `Download an article and print its summary followed by the full text.

Without a URL, a headline is chosen interactively.

Examples:
  newsum read https://example.com/story
  newsum read --summary-only https://example.com/story
  newsum read --query climate
  newsum read --web`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

var (
	query       string
	web         bool
	summaryOnly bool
	jqFilter    string
)

func init() {
	ReadCmd.Flags().StringVarP(&query, "query", "q", "", "Filter headlines when choosing interactively")
	ReadCmd.Flags().BoolVarP(&web, "web", "w", false, "Open the article in the browser")
	ReadCmd.Flags().BoolVarP(&summaryOnly, "summary-only", "s", false, "Print only the summary")
	ReadCmd.Flags().StringVar(&jqFilter, "jq", "", "Filter JSON output using a jq expression")
}

func runRead(c *cobra.Command, args []string) error {
	cfg, err := cmdutil.GetConfigStore(c)
	if err != nil {
		return err
	}

	svc, err := cmdutil.NewService(cfg)
	if err != nil {
		return err
	}

	ctx := c.Context()
	var headline *news.Headline
	url := ""
	if len(args) > 0 {
		url = args[0]
	} else {
		headline, err = chooseHeadline(c, svc)
		if err != nil {
			return err
		}
		url = headline.URL
	}

	if web {
		ui.Info("Opening %s in your browser.", url)
		return browser.OpenURL(url)
	}

	d, err := svc.Digest(ctx, url)
	if err != nil {
		return err
	}
	d.Headline = headline

	opts := cmdutil.OutputOptions{Format: cfg.Display().Output, JQFilter: jqFilter}
	return cmdutil.Output(c.OutOrStdout(), d, opts, func(w io.Writer) error {
		render(w, d)
		return nil
	})
}

func chooseHeadline(c *cobra.Command, svc *digest.Service) (*news.Headline, error) {
	if !ui.IsInteractive() {
		return nil, errors.New("url is required when not running interactively")
	}

	headlines, err := svc.Headlines(c.Context(), query)
	if err != nil {
		return nil, err
	}

	options := make([]ui.SelectOption, len(headlines))
	for i, h := range headlines {
		options[i] = ui.SelectOption{Label: h.Title, Description: h.Source}
	}
	index, err := ui.SelectIndex("Select an article:", options, 15)
	if err != nil {
		return nil, err
	}
	return &headlines[index], nil
}

func render(w io.Writer, d *digest.Digest) {
	title := d.Article.Title
	if title == "" && d.Headline != nil {
		title = d.Headline.Title
	}
	if title != "" {
		_, _ = fmt.Fprintln(w, ui.Bold(title))
	}
	_, _ = fmt.Fprintln(w, ui.Gray(d.Article.URL))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, ui.Cyan("Summary"))
	_, _ = fmt.Fprintln(w, strings.TrimSpace(d.Summary))
	if summaryOnly {
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, ui.Cyan("Article"))
	_, _ = fmt.Fprintln(w, strings.TrimSpace(d.Article.Text))
}
