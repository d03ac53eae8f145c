// This file translates decoded HCL blocks into the format-agnostic worksheet
// model defined in the config package.

package hcl

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/geounits/internal/config"
	"github.com/vk/geounits/internal/schema"
	"github.com/vk/geounits/internal/units"
)

// translateSheet converts one file's top-level blocks into a Sheet.
func (l *Loader) translateSheet(path string, content *hcl.BodyContent) (*config.Sheet, error) {
	sheet := &config.Sheet{Path: path}
	declared := make(map[string]hcl.Range)

	for _, block := range content.Blocks {
		switch block.Type {
		case schema.RuleBlock:
			rule, err := translateRule(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", block.DefRange, err)
			}
			sheet.Rules = append(sheet.Rules, rule)

		case schema.LetBlock:
			let, err := translateLet(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", block.DefRange, err)
			}
			if first, ok := declared[let.Name]; ok {
				return nil, fmt.Errorf("%s: duplicate let %q, first declared at %s", block.DefRange, let.Name, first)
			}
			declared[let.Name] = block.DefRange
			sheet.Lets = append(sheet.Lets, let)
		}
	}
	return sheet, nil
}

// translateRule converts a `rule` block into the agnostic model.
func translateRule(block *hcl.Block) (*config.Rule, error) {
	op, err := units.ParseOperator(block.Labels[0])
	if err != nil {
		return nil, err
	}

	var s schema.Rule
	if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
		return nil, diags
	}

	left, errL := units.QuantityByName(s.Left)
	right, errR := units.QuantityByName(s.Right)
	result, errRes := units.QuantityByName(s.Result)
	if err := errors.Join(errL, errR, errRes); err != nil {
		return nil, err
	}

	symmetric := op == units.OpMultiply
	if s.Symmetric != nil {
		if op == units.OpDivide && *s.Symmetric {
			return nil, errors.New("divide rules cannot be symmetric")
		}
		symmetric = *s.Symmetric
	}

	return &config.Rule{
		Operator:  op,
		Left:      left,
		Right:     right,
		Result:    result,
		Symmetric: symmetric,
		Range:     block.DefRange,
	}, nil
}

// translateLet converts a `let` block into the agnostic model.
func translateLet(block *hcl.Block) (*config.Let, error) {
	name := block.Labels[0]
	if !hclsyntax.ValidIdentifier(name) {
		return nil, fmt.Errorf("let name %q is not a valid identifier", name)
	}

	var s schema.Let
	if diags := gohcl.DecodeBody(block.Body, nil, &s); diags.HasErrors() {
		return nil, diags
	}

	return &config.Let{
		Name:        name,
		Description: s.Description,
		Value:       s.Value,
		Unit:        s.Unit,
		Range:       block.DefRange,
	}, nil
}
