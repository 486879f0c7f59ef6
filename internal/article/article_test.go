package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Floods hit the valley | Example News</title>
  <meta property="og:title" content="Floods hit the valley">
  <script>var tracking = "ignore me";</script>
</head>
<body>
  <header><nav><a href="/">Home</a> <a href="/world">World</a></nav></header>
  <article>
    <h1>Floods hit the valley</h1>
    <p>Heavy rain caused the river to burst its banks on Monday.</p>
    <p>Rescue teams   reached the
       valley at <b>dawn</b>.</p>
    <aside><p>Related: other floods</p></aside>
    <ul><li>Schools closed</li><li>Roads blocked</li></ul>
  </article>
  <footer><p>Copyright Example News</p></footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	got, err := Extract(strings.NewReader(articleHTML))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got.Title != "Floods hit the valley" {
		t.Errorf("Title = %q", got.Title)
	}

	want := []string{
		"Floods hit the valley",
		"Heavy rain caused the river to burst its banks on Monday.",
		"Rescue teams reached the valley at dawn.",
		"Schools closed",
		"Roads blocked",
	}
	if len(got.Paragraphs) != len(want) {
		t.Fatalf("Paragraphs = %q, want %q", got.Paragraphs, want)
	}
	for i := range want {
		if got.Paragraphs[i] != want[i] {
			t.Errorf("Paragraphs[%d] = %q, want %q", i, got.Paragraphs[i], want[i])
		}
	}

	text := got.Text()
	for _, unwanted := range []string{"tracking", "Home", "Related", "Copyright"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("Text() contains %q", unwanted)
		}
	}
}

func TestExtractFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantText  string
	}{
		{
			name:      "main without article",
			html:      `<html><head><title>T</title></head><body><p>outside</p><main><p>inside</p></main></body></html>`,
			wantTitle: "T",
			wantText:  "inside",
		},
		{
			name:      "body without paragraphs",
			html:      `<html><body><div>Just some <span>loose</span> text</div></body></html>`,
			wantTitle: "",
			wantText:  "Just some loose text",
		},
		{
			name:      "title from h1",
			html:      `<html><body><h1>Headline</h1><p>Body.</p></body></html>`,
			wantTitle: "Headline",
			wantText:  "Headline\n\nBody.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", got.Text(), tt.wantText)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, articleHTML)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "  Plain text story.  ")
	})
	mux.HandleFunc("/image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body><script>x()</script></body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(WithUserAgent("test-agent"))

	got, err := f.Fetch(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.Title != "Floods hit the valley" || !strings.Contains(got.Text, "burst its banks") {
		t.Errorf("Fetch() = %+v", got)
	}

	plain, err := f.Fetch(context.Background(), srv.URL+"/plain")
	if err != nil {
		t.Fatalf("Fetch(plain) error = %v", err)
	}
	if plain.Text != "Plain text story." {
		t.Errorf("Text = %q", plain.Text)
	}
}

func TestFetchErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body><script>x()</script></body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tests := []struct {
		name       string
		url        string
		wantErr    error
		wantStatus int
	}{
		{"not found", srv.URL + "/missing", ErrUnexpectedStatus, http.StatusNotFound},
		{"unsupported content", srv.URL + "/image", ErrUnsupportedContent, http.StatusOK},
		{"no content", srv.URL + "/empty", ErrNoContent, http.StatusOK},
		{"invalid scheme", "ftp://example.com/file", ErrInvalidURL, 0},
		{"not a url", "://", ErrInvalidURL, 0},
	}

	f := NewFetcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), tt.url)
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error = %v, want *FetchError", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if fetchErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestFetchMaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer srv.Close()

	got, err := NewFetcher(WithMaxBytes(10)).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got.Text) != 10 {
		t.Errorf("len(Text) = %d, want 10", len(got.Text))
	}
}
