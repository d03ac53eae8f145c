package evaluator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/geounits/internal/config"
	"github.com/vk/geounits/internal/ctxlog"
	"github.com/vk/geounits/internal/exprscan"
	"github.com/vk/geounits/internal/unitfuncs"
	"github.com/vk/geounits/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// letRoot is the variable root under which finished lets are visible.
const letRoot = "let"

// Evaluate runs every let of sheet against regs. References are checked
// before anything is evaluated: a let may only refer to lets declared
// above it.
func Evaluate(ctx context.Context, regs *units.Registries, sheet *config.Sheet) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("sheet", sheet.Path)
	logger.Debug("Evaluating worksheet.", "lets", len(sheet.Lets))

	funcs := unitfuncs.Functions(regs)
	if err := checkLets(sheet.Lets, funcs); err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", sheet.Path, err)
	}

	done := make(map[string]cty.Value, len(sheet.Lets))
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{letRoot: cty.EmptyObjectVal},
		Functions: funcs,
	}
	result := &Result{Path: sheet.Path}

	for _, let := range sheet.Lets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		val, diags := let.Value.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("let %q: %w", let.Name, diags)
		}
		decoded, err := unitfuncs.Decode(val)
		if err != nil {
			return nil, fmt.Errorf("%s: let %q: %w", let.Range, let.Name, err)
		}
		if let.Unit != "" {
			if decoded, err = convert(decoded, let.Unit); err != nil {
				return nil, fmt.Errorf("%s: let %q: %w", let.Range, let.Name, err)
			}
			if val, err = unitfuncs.Encode(decoded); err != nil {
				return nil, fmt.Errorf("%s: let %q: %w", let.Range, let.Name, err)
			}
		}

		entry, err := newEntry(let.Name, let.Description, decoded)
		if err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, entry)

		done[let.Name] = val
		evalCtx.Variables[letRoot] = cty.ObjectVal(done)
		logger.Debug("Let evaluated.", "let", let.Name, "kind", entry.Kind, "value", entry.Text)
	}

	logger.Info("Worksheet evaluated.", "lets", len(result.Entries))
	return result, nil
}

// checkLets rejects calls to functions missing from funcs, references to
// unknown roots or undefined lets, and references to lets declared at or
// below the referring one.
func checkLets(lets []*config.Let, funcs map[string]function.Function) error {
	position := make(map[string]int, len(lets))
	for i, let := range lets {
		position[let.Name] = i
	}

	var errs []error
	for i, let := range lets {
		scan := exprscan.Expression(let.Value)
		for _, call := range scan.Functions {
			if _, ok := funcs[call.Name]; !ok {
				errs = append(errs, fmt.Errorf("%s: let %q calls unknown function %q", call.NameRange, let.Name, call.Name))
			}
		}
		for _, tr := range scan.References {
			rng := tr.SourceRange()
			if root := tr.RootName(); root != letRoot {
				errs = append(errs, fmt.Errorf("%s: let %q refers to unknown variable %q", rng, let.Name, root))
				continue
			}
			if len(tr) < 2 {
				errs = append(errs, fmt.Errorf("%s: let %q uses %q without naming a let", rng, let.Name, letRoot))
				continue
			}
			attr, ok := tr[1].(hcl.TraverseAttr)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: let %q must refer to lets as %s.<name>", rng, let.Name, letRoot))
				continue
			}
			j, declared := position[attr.Name]
			switch {
			case !declared:
				errs = append(errs, fmt.Errorf("%s: let %q refers to undefined let %q", rng, let.Name, attr.Name))
			case j == i:
				errs = append(errs, fmt.Errorf("%s: let %q refers to itself", rng, let.Name))
			case j > i:
				errs = append(errs, fmt.Errorf("%s: let %q refers to %q, which is declared later", rng, let.Name, attr.Name))
			}
		}
	}
	return errors.Join(errs...)
}

func convert(v any, unit string) (any, error) {
	switch x := v.(type) {
	case units.Measure:
		return x.Convert(unit)
	case *units.Tensor:
		return x.Convert(unit)
	}
	return nil, fmt.Errorf("%w: a plain number cannot be converted to %q", units.ErrInvalidOperand, unit)
}
