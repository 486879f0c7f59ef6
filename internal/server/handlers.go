package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/newsdigest/newsum/internal/article"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/summary"
)

// ErrorResponse はエラーレスポンス
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// SummarizeRequest は要約リクエスト
type SummarizeRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm,omitempty"`
}

// SummarizeResponse は要約レスポンス
type SummarizeResponse struct {
	Summary       string `json:"summary"`
	SentenceCount int    `json:"sentence_count"`
	SelectedCount int    `json:"selected_count"`
	Passthrough   bool   `json:"passthrough"`
}

// HeadlinesResponse はニュース一覧レスポンス
type HeadlinesResponse struct {
	Headlines []news.Headline `json:"headlines"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err, desc string) {
	writeJSON(w, status, ErrorResponse{
		Error:       err,
		Description: desc,
	})
}

// writeDomainError はエラーの種類をHTTPステータスに対応付けて返す
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		fetchErr *article.FetchError
		apiErr   *news.APIError
		tokErr   *summary.TokenizationError
	)
	switch {
	case errors.Is(err, article.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, news.ErrNoArticles):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, news.ErrMissingAPIKey), errors.Is(err, digest.ErrNoSource):
		writeError(w, http.StatusServiceUnavailable, "not_configured", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.As(err, &fetchErr):
		writeError(w, http.StatusBadGateway, "fetch_failed", err.Error())
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
	case errors.As(err, &tokErr):
		writeError(w, http.StatusInternalServerError, "tokenization_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

// handleHealth はヘルスチェック
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.settings.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.settings.MaxBodyBytes)
	}

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_request", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	algorithm := strings.TrimSpace(req.Algorithm)
	if algorithm == "" {
		algorithm = s.defaultAlgorithm
	}
	engine, err := s.engines(algorithm)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sum, stats, err := digest.SummarizeWith(engine, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SummarizeResponse{
		Summary:       sum,
		SentenceCount: stats.SentenceCount,
		SelectedCount: stats.SelectedCount,
		Passthrough:   stats.Passthrough,
	})
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	headlines, err := s.backend.Headlines(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HeadlinesResponse{Headlines: headlines})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "url is required")
		return
	}

	d, err := s.backend.Digest(r.Context(), url)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
