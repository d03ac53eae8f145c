package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/geounits/internal/units"
)

// Model is the unified, format-agnostic representation of every loaded
// worksheet, in load order.
type Model struct {
	Sheets []*Sheet
}

// Sheet is one worksheet file: the rules it adds to the registries and the
// calculations it declares.
type Sheet struct {
	Path  string
	Rules []*Rule
	Lets  []*Let
}

// Rule is the format-agnostic representation of a `rule` block.
type Rule struct {
	Operator  units.Operator
	Left      *units.Quantity
	Right     *units.Quantity
	Result    *units.Quantity
	Symmetric bool
	Range     hcl.Range
}

// Let is the format-agnostic representation of a `let` block. Value is
// evaluated later, against the registries the whole model produces.
type Let struct {
	Name        string
	Description string
	Value       hcl.Expression
	Unit        string
	Range       hcl.Range
}

// Rules returns every sheet's rules in load order.
func (m *Model) Rules() []*Rule {
	if m == nil {
		return nil
	}
	var out []*Rule
	for _, s := range m.Sheets {
		out = append(out, s.Rules...)
	}
	return out
}

// RuleModule exposes the model's rules as a registration module.
func (m *Model) RuleModule() units.Module {
	return units.ModuleFunc(func(regs *units.Registries) error {
		for _, r := range m.Rules() {
			if err := r.register(regs); err != nil {
				return fmt.Errorf("%s: %w", r.Range, err)
			}
		}
		return nil
	})
}

func (r *Rule) register(regs *units.Registries) error {
	switch r.Operator {
	case units.OpMultiply:
		return regs.Multiplication.Register(r.Left, r.Right, r.Result, r.Symmetric)
	case units.OpDivide:
		return regs.Division.Register(r.Left, r.Right, r.Result)
	default:
		return fmt.Errorf("unknown operator %q", r.Operator)
	}
}
