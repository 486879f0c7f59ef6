package newsum

import (
	"net/http"

	"github.com/newsdigest/newsum/internal/cmdutil"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/server"
)

// Server is the HTTP API server for newsum.
type Server = server.Server

// NewServer creates a new API server with the given configuration.
// The server provides HTTP handlers for:
//   - GET /health - Health check endpoint
//   - POST /v1/summarize - Summarize posted text
//   - GET /v1/headlines - Current headlines, optionally filtered by ?q=
//   - GET /v1/digest - Download and summarize the article at ?url=
func NewServer(cfg *Config) (*Server, error) {
	svc, err := cmdutil.NewService(cfg)
	if err != nil {
		return nil, err
	}
	return server.NewServer(cfg, svc, cmdutil.EngineFactory(cfg))
}

// Handler creates an HTTP handler for the API server.
// This is a convenience function for serverless environments.
func Handler(cfg *Config) (http.Handler, error) {
	srv, err := NewServer(cfg)
	if err != nil {
		return nil, err
	}
	return srv.Handler(), nil
}

// Summarize returns an extractive summary of text using the configured
// summary settings. Texts shorter than summary.min_words are returned unchanged.
func Summarize(cfg *Config, text string) (string, error) {
	engine, err := cmdutil.NewEngine(cfg, "")
	if err != nil {
		return "", err
	}
	sum, _, err := digest.SummarizeWith(engine, text)
	return sum, err
}

// Close releases the process-wide language model loaded by Summarize and the server.
func Close() error {
	return cmdutil.CloseModel()
}
