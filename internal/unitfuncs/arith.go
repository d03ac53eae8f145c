// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package unitfuncs

import (
	"fmt"

	"github.com/vk/geounits/internal/units"
)

// Operands are float64, units.Measure or *units.Tensor, as produced by
// Decode. A tensor on the right of a measure is rejected rather than
// commuted, since registry rules are ordered.

func add(a, b any) (any, error) {
	switch x := a.(type) {
	case float64:
		switch y := b.(type) {
		case float64:
			return x + y, nil
		case *units.Tensor:
			return y.Add(x)
		}
	case units.Measure:
		if y, ok := b.(units.Measure); ok {
			return x.Add(y)
		}
	case *units.Tensor:
		return x.Add(b)
	}
	return nil, unsupported("add", a, b)
}

func sub(a, b any) (any, error) {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return x - y, nil
		}
	case units.Measure:
		if y, ok := b.(units.Measure); ok {
			return x.Sub(y)
		}
	case *units.Tensor:
		return x.Sub(b)
	}
	return nil, unsupported("subtract", a, b)
}

func mul(regs *units.Registries, a, b any) (any, error) {
	switch x := a.(type) {
	case float64:
		switch y := b.(type) {
		case float64:
			return x * y, nil
		case units.Measure:
			return y.MulScalar(x)
		case *units.Tensor:
			return y.MulIn(regs, x)
		}
	case units.Measure:
		return x.MulIn(regs, b)
	case *units.Tensor:
		return x.MulIn(regs, b)
	}
	return nil, unsupported("multiply", a, b)
}

func div(regs *units.Registries, a, b any) (any, error) {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			if y == 0 {
				return nil, fmt.Errorf("%w: division by zero", units.ErrInvalidOperand)
			}
			return x / y, nil
		}
	case units.Measure:
		return x.DivIn(regs, b)
	case *units.Tensor:
		return x.DivIn(regs, b)
	}
	return nil, unsupported("divide", a, b)
}

func unsupported(op string, a, b any) error {
	return fmt.Errorf("%w: cannot %s %s and %s", units.ErrUnsupportedOperand, op, describe(a), describe(b))
}

func describe(v any) string {
	switch x := v.(type) {
	case float64:
		return "a number"
	case units.Measure:
		return "a " + x.Quantity().Name() + " measure"
	case *units.Tensor:
		return "a " + x.Quantity().Name() + " tensor"
	}
	return fmt.Sprintf("%T", v)
}
