package news

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	// ErrNoArticles は検索結果が0件だった場合のエラー
	ErrNoArticles = errors.New("no articles found")
	// ErrMissingAPIKey はNewsAPIのキーが設定されていない場合のエラー
	ErrMissingAPIKey = errors.New("news api key is not configured")
)

// APIError は NewsAPI のエラーレスポンス
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("news api error: %s (code: %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("news api error: status %d", e.StatusCode)
}

// IsAuth はAPIキーに起因するエラーかどうかを返す
func (e *APIError) IsAuth() bool {
	if e.StatusCode == http.StatusUnauthorized {
		return true
	}
	switch e.Code {
	case "apiKeyMissing", "apiKeyInvalid", "apiKeyDisabled", "apiKeyExhausted":
		return true
	}
	return false
}

// CheckResponse はレスポンスをチェックし、エラーがあれば返す
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}

// DecodeResponse はレスポンスをデコードする
func DecodeResponse(resp *http.Response, v any) error {
	if err := CheckResponse(resp); err != nil {
		return err
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
