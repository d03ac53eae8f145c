// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Tensor is a dense, row-major array of one quantity. Data is always held in
// base units; the unit only decides how elements are presented. The zero
// Tensor belongs to no quantity and is rejected by every operation.
type Tensor struct {
	quantity *Quantity
	unit     Unit
	shape    []int
	data     []float64
}

// FromMeasures builds a one-dimensional tensor. The display unit and quantity
// come from the first element; every element must share its dimension.
func FromMeasures(ms ...Measure) (*Tensor, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: cannot build a tensor from an empty measure list", ErrInvalidOperand)
	}
	first := ms[0]
	if err := first.check(); err != nil {
		return nil, err
	}

	data := make([]float64, len(ms))
	for i, m := range ms {
		if err := m.check(); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if m.Dimension() != first.Dimension() {
			return nil, fmt.Errorf("%w: element %d is %s, tensor holds %s", ErrUnsupportedOperand, i, m.Dimension(), first.Dimension())
		}
		data[i] = m.BaseUnits()
	}
	return &Tensor{quantity: first.quantity, unit: first.unit, shape: []int{len(ms)}, data: data}, nil
}

// FromArray builds a one-dimensional tensor from values expressed in unit.
// Use Reshape for more dimensions.
func FromArray(q *Quantity, values []float64, unit string) (*Tensor, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: tensor needs a quantity", ErrInvalidOperand)
	}
	u, err := tensorUnit(q, unit)
	if err != nil {
		return nil, err
	}
	data := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: element %d is not finite", ErrInvalidOperand, i)
		}
		data[i] = v * u.Factor
	}
	return &Tensor{quantity: q, unit: u, shape: []int{len(values)}, data: data}, nil
}

// FromBaseArray builds a one-dimensional tensor from base-unit magnitudes,
// displayed in unit. The data is stored as given.
func FromBaseArray(q *Quantity, base []float64, unit string) (*Tensor, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: tensor needs a quantity", ErrInvalidOperand)
	}
	u, err := tensorUnit(q, unit)
	if err != nil {
		return nil, err
	}
	for i, v := range base {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: element %d is not finite", ErrInvalidOperand, i)
		}
	}
	return &Tensor{quantity: q, unit: u, shape: []int{len(base)}, data: slices.Clone(base)}, nil
}

func (t *Tensor) check() error {
	if t == nil || t.quantity == nil {
		return fmt.Errorf("%w: uninitialized tensor", ErrInvalidOperand)
	}
	return nil
}

// tensorUnit resolves a display unit for a tensor of q. The blank token is
// only accepted by quantities that have a blank-display unit, which the
// table lookup already enforces.
func tensorUnit(q *Quantity, token string) (Unit, error) {
	u, err := q.units.Lookup(token)
	if err != nil {
		return Unit{}, fmt.Errorf("%w: %w", ErrInvalidUnitForTensor, err)
	}
	return u, nil
}

// Quantity returns the element quantity.
func (t *Tensor) Quantity() *Quantity { return t.quantity }

// Unit returns the display unit.
func (t *Tensor) Unit() Unit { return t.unit }

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int { return slices.Clone(t.shape) }

// NDim returns the number of axes.
func (t *Tensor) NDim() int { return len(t.shape) }

// Len returns the length of the first axis.
func (t *Tensor) Len() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[0]
}

// Size returns the total number of elements.
func (t *Tensor) Size() int { return len(t.data) }

// Copy returns a deep copy.
func (t *Tensor) Copy() *Tensor {
	return &Tensor{quantity: t.quantity, unit: t.unit, shape: slices.Clone(t.shape), data: slices.Clone(t.data)}
}

// Reshape returns a copy with a new shape holding the same number of
// elements.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: reshape needs at least one axis", ErrShapeMismatch)
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("%w: axis length must be positive, got %v", ErrShapeMismatch, shape)
		}
		n *= d
	}
	if n != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) into %v", ErrShapeMismatch, t.shape, len(t.data), shape)
	}
	out := t.Copy()
	out.shape = slices.Clone(shape)
	return out, nil
}

// strides returns row-major strides for shape.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = step
		step *= shape[i]
	}
	return s
}

func (t *Tensor) offset(idx []int) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("%w: tensor has %d axes, got %d indices", ErrIndexOutOfRange, len(t.shape), len(idx))
	}
	off := 0
	for axis, stride := range strides(t.shape) {
		i := idx[axis]
		if i < 0 || i >= t.shape[axis] {
			return 0, fmt.Errorf("%w: index %d on axis %d of length %d", ErrIndexOutOfRange, i, axis, t.shape[axis])
		}
		off += i * stride
	}
	return off, nil
}

// At returns the element at idx as a measure in the display unit.
func (t *Tensor) At(idx ...int) (Measure, error) {
	off, err := t.offset(idx)
	if err != nil {
		return Measure{}, err
	}
	return t.quantity.inUnit(t.data[off], t.unit)
}

// Set stores the base-unit magnitude of value at idx. Measures must match
// the tensor's dimension; plain numbers and other BaseConvertible values are
// taken as base-unit magnitudes.
func (t *Tensor) Set(value any, idx ...int) error {
	off, err := t.offset(idx)
	if err != nil {
		return err
	}

	var base float64
	if k, ok := scalarOf(value); ok {
		base = k
	} else {
		switch v := value.(type) {
		case Measure:
			if err := v.check(); err != nil {
				return err
			}
			if v.Dimension() != t.quantity.dimension {
				return fmt.Errorf("%w: cannot store %s in a %s tensor", ErrDimensionMismatch, v.Dimension(), t.quantity.dimension)
			}
			base = v.BaseUnits()
		case BaseConvertible:
			base = v.BaseUnits()
		default:
			return fmt.Errorf("%w: cannot store %T in a %s tensor", ErrInvalidOperand, value, t.quantity)
		}
	}
	if math.IsNaN(base) || math.IsInf(base, 0) {
		return fmt.Errorf("%w: value is not finite", ErrInvalidOperand)
	}
	t.data[off] = base
	return nil
}

// Slice returns elements [start, end) of the first axis as a new tensor.
func (t *Tensor) Slice(start, end int) (*Tensor, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("%w: cannot slice an empty tensor", ErrIndexOutOfRange)
	}
	if start < 0 || end > t.shape[0] || start > end {
		return nil, fmt.Errorf("%w: slice [%d:%d] of axis length %d", ErrIndexOutOfRange, start, end, t.shape[0])
	}
	row := len(t.data) / max(t.shape[0], 1)
	shape := slices.Clone(t.shape)
	shape[0] = end - start
	return &Tensor{
		quantity: t.quantity,
		unit:     t.unit,
		shape:    shape,
		data:     slices.Clone(t.data[start*row : end*row]),
	}, nil
}

// Take selects index i along axis and drops that axis, so Take(1, 0) on a
// matrix returns its first column. The tensor must have at least two axes;
// use At for single elements.
func (t *Tensor) Take(axis, i int) (*Tensor, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if len(t.shape) < 2 {
		return nil, fmt.Errorf("%w: Take needs at least two axes, tensor has %d", ErrIndexOutOfRange, len(t.shape))
	}
	if axis < 0 || axis >= len(t.shape) {
		return nil, fmt.Errorf("%w: axis %d of %d", ErrIndexOutOfRange, axis, len(t.shape))
	}
	if i < 0 || i >= t.shape[axis] {
		return nil, fmt.Errorf("%w: index %d on axis %d of length %d", ErrIndexOutOfRange, i, axis, t.shape[axis])
	}

	shape := slices.Delete(slices.Clone(t.shape), axis, axis+1)
	st := strides(t.shape)
	data := make([]float64, 0, len(t.data)/t.shape[axis])
	for off, v := range t.data {
		if (off/st[axis])%t.shape[axis] == i {
			data = append(data, v)
		}
	}
	return &Tensor{quantity: t.quantity, unit: t.unit, shape: shape, data: data}, nil
}

// Convert relabels the display unit. Stored base-unit data is not touched.
func (t *Tensor) Convert(unit string) (*Tensor, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	u, err := tensorUnit(t.quantity, unit)
	if err != nil {
		return nil, err
	}
	out := t.Copy()
	out.unit = u
	return out, nil
}

// Values returns the elements scaled to the display unit.
func (t *Tensor) Values() []float64 {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = v / t.unit.Factor
	}
	return out
}

// BaseValues returns a copy of the stored base-unit data.
func (t *Tensor) BaseValues() []float64 { return slices.Clone(t.data) }

// Measures returns every element, in row-major order, as a measure in the
// display unit.
func (t *Tensor) Measures() []Measure {
	out := make([]Measure, len(t.data))
	for i, v := range t.data {
		out[i] = Measure{value: v / t.unit.Factor, unit: t.unit, quantity: t.quantity}
	}
	return out
}

// Sum adds every element and returns the total in the display unit.
func (t *Tensor) Sum() (Measure, error) {
	if err := t.check(); err != nil {
		return Measure{}, err
	}
	total := 0.0
	for _, v := range t.data {
		total += v
	}
	return t.quantity.inUnit(total, t.unit)
}

// Equal reports whether both tensors hold the same quantity and shape with
// identical base-unit elements. Display units are ignored.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.quantity == nil || other.quantity == nil {
		return false
	}
	return t.quantity.dimension == other.quantity.dimension &&
		slices.Equal(t.shape, other.shape) &&
		slices.Equal(t.data, other.data)
}

func (t *Tensor) String() string {
	parts := make([]string, len(t.data))
	for i, v := range t.data {
		parts[i] = fmt.Sprintf("%g", v/t.unit.Factor)
	}
	s := fmt.Sprintf("%s%v[%s]", t.quantity, t.shape, strings.Join(parts, ", "))
	if t.unit.Display != "" {
		s += " " + t.unit.Display
	}
	return s
}
