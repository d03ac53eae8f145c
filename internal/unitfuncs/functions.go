// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package unitfuncs

import (
	"fmt"

	"github.com/vk/geounits/internal/elastic"
	"github.com/vk/geounits/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Functions returns the worksheet function table. Every product and
// quotient between measures or tensors resolves through regs.
func Functions(regs *units.Registries) map[string]function.Function {
	return map[string]function.Function{
		"measure":        measureFunc,
		"tensor":         tensorFunc,
		"convert":        convertFunc,
		"base":           baseFunc,
		"add":            arithmeticFunc(func(a, b any) (any, error) { return add(a, b) }),
		"sub":            arithmeticFunc(func(a, b any) (any, error) { return sub(a, b) }),
		"mul":            arithmeticFunc(func(a, b any) (any, error) { return mul(regs, a, b) }),
		"div":            arithmeticFunc(func(a, b any) (any, error) { return div(regs, a, b) }),
		"at":             atFunc,
		"slice":          sliceFunc,
		"sum":            sumFunc,
		"elastic_strain": elasticStrainFunc,
		"strain_energy":  strainEnergyFunc(regs),
	}
}

var measureFunc = function.New(&function.Spec{
	Description: "Builds a measure of the named quantity.",
	Params: []function.Parameter{
		{Name: "kind", Type: cty.String},
		{Name: "value", Type: cty.Number},
		{Name: "unit", Type: cty.String},
	},
	Type: function.StaticReturnType(MeasureType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		q, err := units.QuantityByName(args[0].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		var v float64
		if err := gocty.FromCtyValue(args[1], &v); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		m, err := q.New(v, args[2].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}
		return Encode(m)
	},
})

var tensorFunc = function.New(&function.Spec{
	Description: "Builds a one-dimensional tensor of the named quantity from values in unit.",
	Params: []function.Parameter{
		{Name: "kind", Type: cty.String},
		{Name: "values", Type: cty.List(cty.Number)},
		{Name: "unit", Type: cty.String},
	},
	Type: function.StaticReturnType(TensorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		q, err := units.QuantityByName(args[0].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		var values []float64
		if err := gocty.FromCtyValue(args[1], &values); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		t, err := units.FromArray(q, values, args[2].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}
		return Encode(t)
	},
})

var convertFunc = function.New(&function.Spec{
	Description: "Expresses a measure or tensor in another unit of its quantity.",
	Params: []function.Parameter{
		{Name: "x", Type: cty.DynamicPseudoType},
		{Name: "unit", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.DynamicPseudoType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		x, err := Decode(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		unit := args[1].AsString()
		switch v := x.(type) {
		case units.Measure:
			out, err := v.Convert(unit)
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			return Encode(out)
		case *units.Tensor:
			out, err := v.Convert(unit)
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			return Encode(out)
		}
		return cty.NilVal, function.NewArgErrorf(0, "a plain number has no unit to convert")
	},
})

var baseFunc = function.New(&function.Spec{
	Description: "Returns the base-unit magnitude of a measure, or the base-unit values of a tensor.",
	Params: []function.Parameter{
		{Name: "x", Type: cty.DynamicPseudoType},
	},
	Type: function.StaticReturnType(cty.DynamicPseudoType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		x, err := Decode(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		switch v := x.(type) {
		case units.Measure:
			return cty.NumberFloatVal(v.BaseUnits()), nil
		case *units.Tensor:
			return gocty.ToCtyValue(v.BaseValues(), cty.List(cty.Number))
		}
		return args[0], nil
	},
})

// arithmeticFunc wraps a binary operation on decoded operands.
func arithmeticFunc(op func(a, b any) (any, error)) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
		},
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			a, err := Decode(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			b, err := Decode(args[1])
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			out, err := op(a, b)
			if err != nil {
				return cty.NilVal, err
			}
			return Encode(out)
		},
	})
}

var atFunc = function.New(&function.Spec{
	Description: "Returns element i of a tensor as a measure.",
	Params: []function.Parameter{
		{Name: "tensor", Type: TensorType},
		{Name: "index", Type: cty.Number},
	},
	Type: function.StaticReturnType(MeasureType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		t, err := decodeTensor(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		var i int
		if err := gocty.FromCtyValue(args[1], &i); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		m, err := t.At(i)
		if err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		return Encode(m)
	},
})

var sliceFunc = function.New(&function.Spec{
	Description: "Returns elements [start, end) of a tensor.",
	Params: []function.Parameter{
		{Name: "tensor", Type: TensorType},
		{Name: "start", Type: cty.Number},
		{Name: "end", Type: cty.Number},
	},
	Type: function.StaticReturnType(TensorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		t, err := decodeTensor(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		var start, end int
		if err := gocty.FromCtyValue(args[1], &start); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		if err := gocty.FromCtyValue(args[2], &end); err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}
		out, err := t.Slice(start, end)
		if err != nil {
			return cty.NilVal, err
		}
		return Encode(out)
	},
})

var sumFunc = function.New(&function.Spec{
	Description: "Adds every element of a tensor.",
	Params: []function.Parameter{
		{Name: "tensor", Type: TensorType},
	},
	Type: function.StaticReturnType(MeasureType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		t, err := decodeTensor(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		m, err := t.Sum()
		if err != nil {
			return cty.NilVal, err
		}
		return Encode(m)
	},
})

var elasticStrainFunc = function.New(&function.Spec{
	Description: "Principal elastic strains from Young's modulus, Poisson's ratio and principal stresses.",
	Params: []function.Parameter{
		{Name: "modulus", Type: MeasureType},
		{Name: "poisson", Type: cty.Number},
		{Name: "sigma", Type: TensorType},
	},
	Type: function.StaticReturnType(TensorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		e, err := decodeMeasure(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		var nu float64
		if err := gocty.FromCtyValue(args[1], &nu); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		sigma, err := decodeTensor(args[2])
		if err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}
		eps, err := elastic.PrincipalStrains(e, nu, sigma)
		if err != nil {
			return cty.NilVal, err
		}
		return Encode(eps)
	},
})

func strainEnergyFunc(regs *units.Registries) function.Function {
	return function.New(&function.Spec{
		Description: "Strain energy per unit volume, ½ Σ σi·εi.",
		Params: []function.Parameter{
			{Name: "sigma", Type: TensorType},
			{Name: "epsilon", Type: TensorType},
		},
		Type: function.StaticReturnType(MeasureType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			sigma, err := decodeTensor(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			eps, err := decodeTensor(args[1])
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}
			u, err := elastic.StrainEnergyDensity(regs, sigma, eps)
			if err != nil {
				return cty.NilVal, err
			}
			return Encode(u)
		},
	})
}

func decodeMeasure(v cty.Value) (units.Measure, error) {
	x, err := Decode(v)
	if err != nil {
		return units.Measure{}, err
	}
	m, ok := x.(units.Measure)
	if !ok {
		return units.Measure{}, fmt.Errorf("%w: expected a measure, got %T", units.ErrUnsupportedOperand, x)
	}
	return m, nil
}

func decodeTensor(v cty.Value) (*units.Tensor, error) {
	x, err := Decode(v)
	if err != nil {
		return nil, err
	}
	t, ok := x.(*units.Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: expected a tensor, got %T", units.ErrUnsupportedOperand, x)
	}
	return t, nil
}
