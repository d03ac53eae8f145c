package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/geounits/internal/units"
	"gopkg.in/yaml.v3"
)

// UnitRow describes one unit of a quantity.
type UnitRow struct {
	Quantity string  `json:"quantity" yaml:"quantity"`
	Name     string  `json:"name" yaml:"name"`
	Display  string  `json:"display" yaml:"display"`
	Factor   float64 `json:"factor" yaml:"factor"`
	Base     bool    `json:"base,omitempty" yaml:"base,omitempty"`
	Alias    bool    `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// RuleRow describes one registered operator rule.
type RuleRow struct {
	Operator string `json:"operator" yaml:"operator"`
	Left     string `json:"left" yaml:"left"`
	Right    string `json:"right" yaml:"right"`
	Result   string `json:"result" yaml:"result"`
}

// UnitRows flattens the unit tables of qs.
func UnitRows(qs ...*units.Quantity) []UnitRow {
	var rows []UnitRow
	for _, q := range qs {
		base := q.Units().Base()
		for _, u := range q.Units().Units() {
			rows = append(rows, UnitRow{Quantity: q.Name(), Name: u.Name, Display: u.Display, Factor: u.Factor, Base: u == base, Alias: u.Alias})
		}
	}
	return rows
}

// RuleRows converts registry rules into rows.
func RuleRows(rules []units.Rule) []RuleRow {
	rows := make([]RuleRow, len(rules))
	for i, r := range rules {
		rows[i] = RuleRow{
			Operator: string(r.Operator),
			Left:     r.Left.String(),
			Right:    r.Right.String(),
			Result:   r.Result.Dimension().String(),
		}
	}
	return rows
}

// WriteUnits renders unit rows.
func WriteUnits(w io.Writer, format Format, rows []UnitRow) error {
	return writeRows(w, format, rows, "QUANTITY\tNAME\tDISPLAY\tFACTOR\tBASE", func(r UnitRow) string {
		base := ""
		switch {
		case r.Base:
			base = "*"
		case r.Alias:
			base = "alias"
		}
		return fmt.Sprintf("%s\t%s\t%s\t%g\t%s", r.Quantity, r.Name, r.Display, r.Factor, base)
	})
}

// WriteRules renders rule rows.
func WriteRules(w io.Writer, format Format, rows []RuleRow) error {
	return writeRows(w, format, rows, "OPERATOR\tLEFT\tRIGHT\tRESULT", func(r RuleRow) string {
		return fmt.Sprintf("%s\t%s\t%s\t%s", r.Operator, r.Left, r.Right, r.Result)
	})
}

func writeRows[T any](w io.Writer, format Format, rows []T, header string, line func(T) string) error {
	if rows == nil {
		rows = []T{}
	}
	switch format {
	case FormatText, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, header)
		for _, r := range rows {
			fmt.Fprintln(tw, line(r))
		}
		return tw.Flush()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("invalid output format %q", format)
}
