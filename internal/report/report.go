// Package report renders evaluated worksheets as an aligned text table,
// JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/vk/geounits/internal/evaluator"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q: must be 'text', 'json' or 'yaml'", s)
}

// Write renders results to w in the given format.
func Write(w io.Writer, format Format, results []*evaluator.Result) error {
	if results == nil {
		results = []*evaluator.Result{}
	}
	switch format {
	case FormatText, "":
		return writeText(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid output format %q", format)
}

func writeText(w io.Writer, results []*evaluator.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", res.Path)
		fmt.Fprintln(tw, "NAME\tKIND\tVALUE\tDESCRIPTION")
		for _, e := range res.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Kind, e.Text, e.Description)
		}
	}
	return tw.Flush()
}
