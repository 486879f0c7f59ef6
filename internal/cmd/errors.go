package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/newsdigest/newsum/internal/article"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/summary"
	"github.com/newsdigest/newsum/internal/ui"
)

// ExitCode はエラーの終了コード
type ExitCode int

const (
	ExitOK       ExitCode = 0
	ExitError    ExitCode = 1
	ExitAuth     ExitCode = 2
	ExitNotFound ExitCode = 3
	ExitConfig   ExitCode = 4
)

// HandleError はエラーを処理して適切なメッセージを表示する
func HandleError(err error) ExitCode {
	if err == nil {
		return ExitOK
	}

	var (
		apiErr   *news.APIError
		fetchErr *article.FetchError
		tokErr   *summary.TokenizationError
	)
	switch {
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, context.Canceled):
		ui.Error("Cancelled")
		return ExitError
	case errors.Is(err, news.ErrMissingAPIKey):
		ui.Error("NewsAPI key is not configured. Run 'newsum config set-key' or set NEWS_API_KEY.")
		return ExitAuth
	case errors.As(err, &apiErr):
		return handleAPIError(apiErr)
	case errors.Is(err, news.ErrNoArticles):
		ui.Error("No articles found")
		return ExitNotFound
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode == 404 {
			ui.Error("Article not found: %s", fetchErr.URL)
			return ExitNotFound
		}
		ui.Error("%v", fetchErr)
		return ExitError
	case errors.As(err, &tokErr):
		ui.Error("Failed to split text into sentences: %v", tokErr.Err)
		return ExitError
	case errors.Is(err, digest.ErrNoSource), errors.Is(err, summary.ErrInvalidOptions):
		ui.Error("%v", err)
		return ExitConfig
	}

	// 一般的なエラー
	ui.Error("%v", err)
	return ExitError
}

func handleAPIError(err *news.APIError) ExitCode {
	switch {
	case err.IsAuth():
		ui.Error("NewsAPI rejected the API key: %s", getErrorMessage(err))
		return ExitAuth
	case err.StatusCode == 404:
		ui.Error("Not found: %s", getErrorMessage(err))
		return ExitNotFound
	case err.StatusCode == 429:
		ui.Error("Rate limit exceeded. Please wait and try again.")
		return ExitError
	default:
		ui.Error("NewsAPI error (%d): %s", err.StatusCode, getErrorMessage(err))
		return ExitError
	}
}

func getErrorMessage(err *news.APIError) string {
	if err.Message != "" {
		return err.Message
	}
	return fmt.Sprintf("status %d", err.StatusCode)
}

// PrintError はエラーを標準エラー出力に表示する
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
