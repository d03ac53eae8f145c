// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"fmt"
	"math"
	"slices"
)

// operand is the right-hand side of an elementwise operation, broadcast to
// the left tensor's shape. quantity is nil for plain numbers.
type operand struct {
	quantity *Quantity
	at       func(i int) float64
}

func (t *Tensor) operand(other any) (operand, error) {
	if err := t.check(); err != nil {
		return operand{}, err
	}
	if k, ok := scalarOf(other); ok {
		return operand{at: func(int) float64 { return k }}, nil
	}

	switch o := other.(type) {
	case Tensor:
		return t.operand(&o)
	case *Tensor:
		if err := o.check(); err != nil {
			return operand{}, err
		}
		if o.quantity.dimension != t.quantity.dimension {
			return operand{}, fmt.Errorf("%w: %s tensor with %s tensor", ErrUnsupportedOperand, t.quantity, o.quantity)
		}
		if !slices.Equal(t.shape, o.shape) {
			return operand{}, fmt.Errorf("%w: %v and %v", ErrShapeMismatch, t.shape, o.shape)
		}
		return operand{quantity: o.quantity, at: func(i int) float64 { return o.data[i] }}, nil
	case Measure:
		if err := o.check(); err != nil {
			return operand{}, err
		}
		if o.Dimension() != t.quantity.dimension {
			return operand{}, fmt.Errorf("%w: %s tensor with %s measure", ErrUnsupportedOperand, t.quantity, o.quantity)
		}
		base := o.BaseUnits()
		return operand{quantity: o.quantity, at: func(int) float64 { return base }}, nil
	}
	return operand{}, fmt.Errorf("%w: %T", ErrUnsupportedOperand, other)
}

// apply builds a new tensor of q, displayed in unit, from fn applied to each
// element pair.
func (t *Tensor) apply(q *Quantity, unit Unit, rhs operand, fn func(a, b float64) (float64, error)) (*Tensor, error) {
	data := make([]float64, len(t.data))
	for i, a := range t.data {
		v, err := fn(a, rhs.at(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: element %d is not finite", ErrInvalidOperand, i)
		}
		data[i] = v
	}
	return &Tensor{quantity: q, unit: unit, shape: slices.Clone(t.shape), data: data}, nil
}

// Add adds a same-quantity tensor of equal shape, a same-quantity measure, or
// a plain number taken as a base-unit magnitude. The display unit is kept.
func (t *Tensor) Add(other any) (*Tensor, error) {
	rhs, err := t.operand(other)
	if err != nil {
		return nil, err
	}
	return t.apply(t.quantity, t.unit, rhs, func(a, b float64) (float64, error) { return a + b, nil })
}

// Sub is the subtracting counterpart of Add.
func (t *Tensor) Sub(other any) (*Tensor, error) {
	rhs, err := t.operand(other)
	if err != nil {
		return nil, err
	}
	return t.apply(t.quantity, t.unit, rhs, func(a, b float64) (float64, error) { return a - b, nil })
}

// Mul multiplies elementwise using the default registries.
func (t *Tensor) Mul(other any) (*Tensor, error) {
	return t.MulIn(Default(), other)
}

// MulIn multiplies elementwise. A plain number scales every element; a
// tensor or measure operand yields a tensor of whatever quantity regs
// resolves for the pair, in that quantity's base unit.
func (t *Tensor) MulIn(regs *Registries, other any) (*Tensor, error) {
	return t.product(regs, OpMultiply, other, func(a, b float64) (float64, error) { return a * b, nil })
}

// Div divides elementwise using the default registries.
func (t *Tensor) Div(other any) (*Tensor, error) {
	return t.DivIn(Default(), other)
}

// DivIn is the dividing counterpart of MulIn.
func (t *Tensor) DivIn(regs *Registries, other any) (*Tensor, error) {
	return t.product(regs, OpDivide, other, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrInvalidOperand)
		}
		return a / b, nil
	})
}

func (t *Tensor) product(regs *Registries, op Operator, other any, fn func(a, b float64) (float64, error)) (*Tensor, error) {
	rhs, err := t.operand(other)
	if err != nil {
		return nil, err
	}
	if rhs.quantity == nil {
		return t.apply(t.quantity, t.unit, rhs, fn)
	}
	result, err := regs.resultOf(op, t.quantity.dimension, rhs.quantity.dimension)
	if err != nil {
		return nil, err
	}
	return t.apply(result, result.units.Base(), rhs, fn)
}
