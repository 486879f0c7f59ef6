package article

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrInvalidURL は http/https 以外のURLが渡された場合のエラー
	ErrInvalidURL = errors.New("invalid article url")
	// ErrUnexpectedStatus は2xx以外のレスポンスを受け取った場合のエラー
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrUnsupportedContent はHTML/テキスト以外のコンテンツの場合のエラー
	ErrUnsupportedContent = errors.New("unsupported content type")
	// ErrNoContent は本文を抽出できなかった場合のエラー
	ErrNoContent = errors.New("no readable content")
)

// FetchError は記事の取得に失敗したことを表す
type FetchError struct {
	URL string
	// HTTPレスポンスを受け取れた場合のステータスコード（それ以外は0）
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch article %s: %v (status %d)", e.URL, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("fetch article %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
