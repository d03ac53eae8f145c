// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"cmp"
	"fmt"
	"math"
)

// Measure is an immutable magnitude expressed in one unit of a quantity.
// Every operation returns a new Measure. The zero Measure belongs to no
// quantity and is rejected by every operation.
type Measure struct {
	value    float64
	unit     Unit
	quantity *Quantity
}

// Key identifies a measure by dimension and base-unit magnitude, so measures
// that are equal in different units share a key.
type Key struct {
	Dimension Dimension
	Base      float64
}

// Value returns the magnitude in the measure's own unit.
func (m Measure) Value() float64 { return m.value }

// Unit returns the unit the value is expressed in.
func (m Measure) Unit() Unit { return m.unit }

// Quantity returns the owning quantity, nil for the zero Measure.
func (m Measure) Quantity() *Quantity { return m.quantity }

// Dimension returns the quantity's dimension tag.
func (m Measure) Dimension() Dimension {
	if m.quantity == nil {
		return 0
	}
	return m.quantity.dimension
}

// IsZero reports whether m is the zero Measure.
func (m Measure) IsZero() bool { return m.quantity == nil }

// BaseUnits returns value × factor.
func (m Measure) BaseUnits() float64 { return m.value * m.unit.Factor }

// Key returns the hashable identity of m.
func (m Measure) Key() Key {
	return Key{Dimension: m.Dimension(), Base: m.BaseUnits()}
}

func (m Measure) String() string {
	if m.unit.Display == "" {
		return fmt.Sprintf("%g", m.value)
	}
	return fmt.Sprintf("%g %s", m.value, m.unit.Display)
}

func (m Measure) check() error {
	if m.quantity == nil {
		return fmt.Errorf("%w: uninitialized measure", ErrInvalidOperand)
	}
	return nil
}

// Convert expresses m in another unit of the same quantity.
func (m Measure) Convert(unit string) (Measure, error) {
	if err := m.check(); err != nil {
		return Measure{}, err
	}
	target, err := m.quantity.units.Lookup(unit)
	if err != nil {
		return Measure{}, err
	}
	if target == m.unit {
		return m, nil
	}
	return m.quantity.inUnit(m.BaseUnits(), target)
}

// Add sums two measures of the same dimension. The result is in m's unit.
func (m Measure) Add(other Measure) (Measure, error) {
	if err := m.sameDimension(other, "add"); err != nil {
		return Measure{}, err
	}
	return m.quantity.inUnit(m.BaseUnits()+other.BaseUnits(), m.unit)
}

// Sub subtracts other from m. The result is in m's unit.
func (m Measure) Sub(other Measure) (Measure, error) {
	if err := m.sameDimension(other, "subtract"); err != nil {
		return Measure{}, err
	}
	return m.quantity.inUnit(m.BaseUnits()-other.BaseUnits(), m.unit)
}

// MulScalar scales the value by k, keeping the unit.
func (m Measure) MulScalar(k float64) (Measure, error) {
	if err := m.check(); err != nil {
		return Measure{}, err
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return Measure{}, fmt.Errorf("%w: scale factor must be finite, got %g", ErrInvalidOperand, k)
	}
	return m.quantity.withValue(m.value*k, m.unit)
}

// DivScalar divides the value by k, keeping the unit.
func (m Measure) DivScalar(k float64) (Measure, error) {
	if err := m.check(); err != nil {
		return Measure{}, err
	}
	if k == 0 {
		return Measure{}, fmt.Errorf("%w: %s divided by zero", ErrInvalidOperand, m.quantity)
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return Measure{}, fmt.Errorf("%w: divisor must be finite, got %g", ErrInvalidOperand, k)
	}
	return m.quantity.withValue(m.value/k, m.unit)
}

// Mul multiplies m by a plain number or by another measure. Measure
// operands are resolved through the default multiplication registry.
func (m Measure) Mul(other any) (Measure, error) {
	return m.MulIn(Default(), other)
}

// MulIn is Mul resolved against regs instead of the default registries.
func (m Measure) MulIn(regs *Registries, other any) (Measure, error) {
	if k, ok := scalarOf(other); ok {
		return m.MulScalar(k)
	}
	o, ok := other.(Measure)
	if !ok {
		return Measure{}, fmt.Errorf("%w: cannot multiply %s by %T", ErrInvalidOperand, m.quantity, other)
	}
	return regs.Multiply(m, o)
}

// Div divides m by a plain number or by another measure. Measure operands
// are resolved through the default division registry.
func (m Measure) Div(other any) (Measure, error) {
	return m.DivIn(Default(), other)
}

// DivIn is Div resolved against regs instead of the default registries.
func (m Measure) DivIn(regs *Registries, other any) (Measure, error) {
	if k, ok := scalarOf(other); ok {
		return m.DivScalar(k)
	}
	o, ok := other.(Measure)
	if !ok {
		return Measure{}, fmt.Errorf("%w: cannot divide %s by %T", ErrInvalidOperand, m.quantity, other)
	}
	return regs.Divide(m, o)
}

// Compare orders m against a measure of the same dimension or a plain number
// taken as a base-unit magnitude. It returns -1, 0 or +1.
func (m Measure) Compare(other any) (int, error) {
	if err := m.check(); err != nil {
		return 0, err
	}
	if k, ok := scalarOf(other); ok {
		return cmp.Compare(m.BaseUnits(), k), nil
	}
	o, ok := other.(Measure)
	if !ok {
		return 0, fmt.Errorf("%w: cannot compare %s with %T", ErrInvalidOperand, m.quantity, other)
	}
	if err := m.sameDimension(o, "compare"); err != nil {
		return 0, err
	}
	return cmp.Compare(m.BaseUnits(), o.BaseUnits()), nil
}

// Less reports m < other.
func (m Measure) Less(other any) (bool, error) {
	c, err := m.Compare(other)
	return c < 0, err
}

// LessOrEqual reports m <= other.
func (m Measure) LessOrEqual(other any) (bool, error) {
	c, err := m.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports m > other.
func (m Measure) Greater(other any) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

// GreaterOrEqual reports m >= other.
func (m Measure) GreaterOrEqual(other any) (bool, error) {
	c, err := m.Compare(other)
	return err == nil && c >= 0, err
}

// Equal reports whether both measures have the same dimension and base-unit
// magnitude. Measures of different dimensions are never equal.
func (m Measure) Equal(other Measure) bool {
	return m.quantity != nil && m.Key() == other.Key()
}

func (m Measure) sameDimension(other Measure, op string) error {
	if err := m.check(); err != nil {
		return err
	}
	if err := other.check(); err != nil {
		return err
	}
	if m.quantity.dimension != other.quantity.dimension {
		return fmt.Errorf("%w: cannot %s %s and %s", ErrDimensionMismatch, op, m.quantity.dimension, other.quantity.dimension)
	}
	return nil
}
