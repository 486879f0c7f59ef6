package summary

import "github.com/go-faster/errors"

// ErrInvalidOptions は要約の設定値が不正な場合のエラー
var ErrInvalidOptions = errors.New("invalid summary options")

// TokenizationError はトークナイザが失敗したことを表す
// 要約処理そのものはテキストに対して失敗しないため、返るエラーはこれのみ
type TokenizationError struct {
	Err error
}

func (e *TokenizationError) Error() string {
	return "tokenize text: " + e.Err.Error()
}

func (e *TokenizationError) Unwrap() error {
	return e.Err
}
