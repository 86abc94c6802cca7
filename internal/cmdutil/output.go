package cmdutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cli/go-gh/v2/pkg/jq"
	"gopkg.in/yaml.v3"

	"github.com/wrklg/jira-wrklg/internal/ui"
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

// OutputYAML outputs data as YAML with two-space indentation.
func OutputYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// applyJQFilter applies a jq filter to JSON data.
func applyJQFilter(w io.Writer, jsonBytes []byte, filter string, colorize bool) error {
	input := bytes.NewReader(jsonBytes)
	useColor := colorize && ui.IsColorEnabled()
	return jq.EvaluateFormatted(input, w, filter, "  ", useColor)
}
