package article

import (
	"io"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// 本文として扱わない要素
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Form:     true,
	atom.Iframe:   true,
	atom.Svg:      true,
	atom.Button:   true,
	atom.Template: true,
}

// 前後に空白を入れずに連結するインライン要素
var inline = map[atom.Atom]bool{
	atom.A:      true,
	atom.Abbr:   true,
	atom.B:      true,
	atom.Cite:   true,
	atom.Code:   true,
	atom.Em:     true,
	atom.I:      true,
	atom.Mark:   true,
	atom.Q:      true,
	atom.S:      true,
	atom.Small:  true,
	atom.Span:   true,
	atom.Strong: true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.Time:   true,
	atom.U:      true,
}

// 段落として取り出す要素
var blocks = map[atom.Atom]bool{
	atom.P:          true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
}

// Extracted はHTMLから取り出したタイトルと本文
type Extracted struct {
	Title      string
	Paragraphs []string
}

// Text は段落を空行区切りで連結した本文を返す
func (e *Extracted) Text() string {
	return strings.Join(e.Paragraphs, "\n\n")
}

// Extract はHTMLからタイトルと本文の段落を取り出す
// <article>、<main>、<body> の順に本文のルートを探す
func Extract(r io.Reader) (*Extracted, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}

	root := findFirst(doc, atom.Article)
	if root == nil {
		root = findFirst(doc, atom.Main)
	}
	if root == nil {
		root = findFirst(doc, atom.Body)
	}
	if root == nil {
		root = doc
	}

	out := &Extracted{Title: findTitle(doc)}
	collectBlocks(root, &out.Paragraphs)

	// 段落要素がないページは本文ルートのテキスト全体を1段落とする
	if len(out.Paragraphs) == 0 {
		if text := textContent(root); text != "" {
			out.Paragraphs = []string{text}
		}
	}
	return out, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectBlocks(n *html.Node, out *[]string) {
	if n.Type == html.ElementNode {
		if skipped[n.DataAtom] {
			return
		}
		if blocks[n.DataAtom] {
			if text := textContent(n); text != "" {
				*out = append(*out, text)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectBlocks(c, out)
	}
}

// textContent は要素配下のテキストを空白を詰めて返す
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.DataAtom] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && !inline[n.DataAtom] {
			sb.WriteByte(' ')
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// findTitle は og:title、<title>、最初の <h1> の順にタイトルを探す
func findTitle(doc *html.Node) string {
	if meta := findMeta(doc, "og:title"); meta != "" {
		return meta
	}
	if t := findFirst(doc, atom.Title); t != nil {
		if text := textContent(t); text != "" {
			return text
		}
	}
	if h1 := findFirst(doc, atom.H1); h1 != nil {
		return textContent(h1)
	}
	return ""
}

func findMeta(n *html.Node, property string) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
		var prop, content string
		for _, attr := range n.Attr {
			switch strings.ToLower(attr.Key) {
			case "property", "name":
				prop = strings.ToLower(attr.Val)
			case "content":
				content = attr.Val
			}
		}
		if prop == property {
			return strings.TrimSpace(content)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findMeta(c, property); v != "" {
			return v
		}
	}
	return ""
}
