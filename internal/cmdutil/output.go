package cmdutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/jq"
	"gopkg.in/yaml.v3"

	"github.com/newsdigest/newsum/internal/ui"
)

// 出力形式
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// JSONOutputOptions holds options for JSON output with optional jq filtering.
type JSONOutputOptions struct {
	JQFilter string // jq filter expression
	Pretty   bool   // Pretty-print output
}

// OutputJSON outputs data as JSON with optional jq filtering.
func OutputJSON(w io.Writer, data any, opts JSONOutputOptions) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Apply jq filter if specified
	if opts.JQFilter != "" {
		return applyJQFilter(w, jsonBytes, opts.JQFilter, opts.Pretty)
	}

	if opts.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, jsonBytes, "", "  "); err != nil {
			return fmt.Errorf("failed to indent JSON: %w", err)
		}
		jsonBytes = buf.Bytes()
	}

	if _, err := w.Write(jsonBytes); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// applyJQFilter applies a jq filter to JSON data.
func applyJQFilter(w io.Writer, jsonBytes []byte, filter string, colorize bool) error {
	input := bytes.NewReader(jsonBytes)
	useColor := colorize && ui.IsColorEnabled()
	return jq.EvaluateFormatted(input, w, filter, "  ", useColor)
}

// OutputYAML は data をYAMLで出力する
// キー名はJSONタグに合わせるため、一度JSONを経由する
func OutputYAML(w io.Writer, data any) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	var generic any
	if err := json.Unmarshal(jsonBytes, &generic); err != nil {
		return fmt.Errorf("failed to convert data: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// OutputOptions は構造化出力の指定
type OutputOptions struct {
	Format   string
	JQFilter string
}

// Output は形式に応じて data を出力する
// table の場合は renderTable を呼ぶ
func Output(w io.Writer, data any, opts OutputOptions, renderTable func(io.Writer) error) error {
	format := strings.ToLower(opts.Format)
	if opts.JQFilter != "" && format != FormatJSON {
		// --jq はJSON出力を前提とする
		format = FormatJSON
	}

	switch format {
	case FormatJSON:
		return OutputJSON(w, data, JSONOutputOptions{JQFilter: opts.JQFilter, Pretty: true})
	case FormatYAML:
		return OutputYAML(w, data)
	case FormatTable, "":
		return renderTable(w)
	default:
		return fmt.Errorf("unsupported output format: %s (want table, json or yaml)", opts.Format)
	}
}
