// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package unitfuncs

import (
	"fmt"

	"github.com/vk/geounits/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	// MeasureType is the cty shape of a measure inside a worksheet.
	MeasureType = cty.Object(map[string]cty.Type{
		"kind":  cty.String,
		"value": cty.Number,
		"unit":  cty.String,
	})

	// TensorType is the cty shape of a one-dimensional tensor. values is
	// expressed in the display unit for reading; base_values carries the
	// stored data so a tensor passes between lets unchanged.
	TensorType = cty.Object(map[string]cty.Type{
		"kind":        cty.String,
		"unit":        cty.String,
		"values":      cty.List(cty.Number),
		"base_values": cty.List(cty.Number),
	})

	// tensorLiteralType accepts hand-written tensor objects that only give
	// display-unit values.
	tensorLiteralType = cty.Object(map[string]cty.Type{
		"kind":   cty.String,
		"unit":   cty.String,
		"values": cty.List(cty.Number),
	})
)

type measureObject struct {
	Kind  string  `cty:"kind"`
	Value float64 `cty:"value"`
	Unit  string  `cty:"unit"`
}

type tensorObject struct {
	Kind       string    `cty:"kind"`
	Unit       string    `cty:"unit"`
	Values     []float64 `cty:"values"`
	BaseValues []float64 `cty:"base_values"`
}

type tensorLiteral struct {
	Kind   string    `cty:"kind"`
	Unit   string    `cty:"unit"`
	Values []float64 `cty:"values"`
}

// Encode converts a units.Measure, *units.Tensor or float64 into its cty
// form. Units are written by name so they round-trip through Decode.
func Encode(v any) (cty.Value, error) {
	switch x := v.(type) {
	case float64:
		return cty.NumberFloatVal(x), nil
	case units.Measure:
		if x.IsZero() {
			return cty.NilVal, fmt.Errorf("%w: uninitialized measure", units.ErrInvalidOperand)
		}
		return gocty.ToCtyValue(measureObject{
			Kind:  x.Quantity().Name(),
			Value: x.Value(),
			Unit:  x.Unit().Name,
		}, MeasureType)
	case *units.Tensor:
		if x == nil || x.Quantity() == nil {
			return cty.NilVal, fmt.Errorf("%w: uninitialized tensor", units.ErrInvalidOperand)
		}
		if x.NDim() != 1 {
			return cty.NilVal, fmt.Errorf("%w: worksheets hold one-dimensional tensors, got shape %v", units.ErrShapeMismatch, x.Shape())
		}
		return gocty.ToCtyValue(tensorObject{
			Kind:       x.Quantity().Name(),
			Unit:       x.Unit().Name,
			Values:     x.Values(),
			BaseValues: x.BaseValues(),
		}, TensorType)
	}
	return cty.NilVal, fmt.Errorf("%w: cannot encode %T", units.ErrUnsupportedOperand, v)
}

// Decode converts a cty value back into a float64, units.Measure or
// *units.Tensor. Objects are told apart by their `value` or `values`
// attribute. Tensors carrying `base_values` are rebuilt from them exactly.
func Decode(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("%w: null or unknown value", units.ErrInvalidOperand)
	}

	ty := v.Type()
	switch {
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil

	case ty.IsObjectType() && ty.HasAttribute("base_values"):
		var obj tensorObject
		if err := decodeObject(v, TensorType, &obj); err != nil {
			return nil, err
		}
		q, err := units.QuantityByName(obj.Kind)
		if err != nil {
			return nil, err
		}
		return units.FromBaseArray(q, obj.BaseValues, obj.Unit)

	case ty.IsObjectType() && ty.HasAttribute("values"):
		var obj tensorLiteral
		if err := decodeObject(v, tensorLiteralType, &obj); err != nil {
			return nil, err
		}
		q, err := units.QuantityByName(obj.Kind)
		if err != nil {
			return nil, err
		}
		return units.FromArray(q, obj.Values, obj.Unit)

	case ty.IsObjectType() && ty.HasAttribute("value"):
		var obj measureObject
		if err := decodeObject(v, MeasureType, &obj); err != nil {
			return nil, err
		}
		q, err := units.QuantityByName(obj.Kind)
		if err != nil {
			return nil, err
		}
		return q.New(obj.Value, obj.Unit)
	}
	return nil, fmt.Errorf("%w: %s is neither a number, a measure nor a tensor", units.ErrUnsupportedOperand, ty.FriendlyName())
}

// decodeObject converts v to want first, so hand-written object literals
// with tuples or numeric strings are accepted.
func decodeObject(v cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(v, want)
	if err != nil {
		return fmt.Errorf("%w: %w", units.ErrInvalidOperand, err)
	}
	return gocty.FromCtyValue(converted, target)
}
