// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"fmt"
	"math"
	"strings"
)

// Quantity defines one kind of measure: its dimension and its unit table.
// Quantities are compared by identity.
type Quantity struct {
	name      string
	dimension Dimension
	units     *UnitTable
}

var (
	// Length is measured in metres.
	Length = &Quantity{
		name:      "length",
		dimension: DimensionLength,
		units: mustUnitTable("length",
			Unit{Name: "m", Display: "m", Factor: 1},
			Unit{Name: "cm", Display: "cm", Factor: 1e-2},
			Unit{Name: "mm", Display: "mm", Factor: 1e-3},
			Unit{Name: "km", Display: "km", Factor: 1e3},
			Unit{Name: "ft", Display: "ft", Factor: 0.3048},
		),
	}

	// Stress is measured in pascals.
	Stress = &Quantity{
		name:      "stress",
		dimension: DimensionStress,
		units: mustUnitTable("stress",
			Unit{Name: "Pa", Display: "Pa", Factor: 1},
			Unit{Name: "kPa", Display: "kPa", Factor: 1e3},
			Unit{Name: "MPa", Display: "MPa", Factor: 1e6},
			Unit{Name: "GPa", Display: "GPa", Factor: 1e9},
			Unit{Name: "kgf_cm2", Display: "kgf/cm²", Factor: 98066.5},
			Unit{Name: "tf_m2", Display: "tf/m²", Factor: 9806.65},
		),
	}

	// SpecificWeight (unit weight) is measured in newtons per cubic metre.
	// g/cm³ and t/m³ are read as gram-force and tonne-force per volume.
	SpecificWeight = &Quantity{
		name:      "specific_weight",
		dimension: DimensionSpecificWeight,
		units: mustUnitTable("specific_weight",
			Unit{Name: "N_m3", Display: "N/m³", Factor: 1},
			Unit{Name: "kN_m3", Display: "kN/m³", Factor: 1e3},
			Unit{Name: "g_cm3", Display: "g/cm³", Factor: 9806.65},
			Unit{Name: "t_m3", Display: "t/m³", Factor: 9806.65},
		),
	}

	// Strain is dimensionless; its base unit displays as the empty string.
	Strain = &Quantity{
		name:      "strain",
		dimension: DimensionStrain,
		units: mustUnitTable("strain",
			Unit{Name: "none", Display: "", Factor: 1},
			Unit{Name: "percent", Display: "%", Factor: 1e-2},
		),
	}

	// EnergyDensity (strain energy per unit volume) is measured in joules per
	// cubic metre. J/m³ equals Pa, so pascal spellings are accepted as aliases.
	EnergyDensity = &Quantity{
		name:      "energy_density",
		dimension: DimensionEnergyDensity,
		units: mustUnitTable("energy_density",
			Unit{Name: "J_m3", Display: "J/m³", Factor: 1},
			Unit{Name: "kJ_m3", Display: "kJ/m³", Factor: 1e3},
			Unit{Name: "MJ_m3", Display: "MJ/m³", Factor: 1e6},
			Unit{Name: "Pa", Display: "Pa", Factor: 1, Alias: true},
			Unit{Name: "kPa", Display: "kPa", Factor: 1e3, Alias: true},
			Unit{Name: "MPa", Display: "MPa", Factor: 1e6, Alias: true},
		),
	}
)

var quantities = []*Quantity{Length, Stress, SpecificWeight, Strain, EnergyDensity}

// Quantities returns every known quantity.
func Quantities() []*Quantity {
	return append([]*Quantity(nil), quantities...)
}

// QuantityByName finds a quantity by its snake_case name ("specific_weight").
// Matching ignores case.
func QuantityByName(name string) (*Quantity, error) {
	for _, q := range quantities {
		if strings.EqualFold(q.name, name) {
			return q, nil
		}
	}
	names := make([]string, len(quantities))
	for i, q := range quantities {
		names[i] = q.name
	}
	return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownQuantity, name, strings.Join(names, ", "))
}

// QuantityOf returns the quantity declared for d.
func QuantityOf(d Dimension) (*Quantity, error) {
	for _, q := range quantities {
		if q.dimension == d {
			return q, nil
		}
	}
	return nil, fmt.Errorf("%w: no quantity for dimension %s", ErrUnknownQuantity, d)
}

// Name returns the snake_case quantity name.
func (q *Quantity) Name() string { return q.name }

// Dimension returns the quantity's dimension tag.
func (q *Quantity) Dimension() Dimension { return q.dimension }

// Units returns the quantity's unit table.
func (q *Quantity) Units() *UnitTable { return q.units }

func (q *Quantity) String() string { return q.name }

// New builds a measure from a value and a unit token (name or display
// string).
func (q *Quantity) New(value float64, unit string) (Measure, error) {
	u, err := q.units.Lookup(unit)
	if err != nil {
		return Measure{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Measure{}, fmt.Errorf("%w: %s value must be finite, got %g", ErrInvalidOperand, q.name, value)
	}
	return Measure{value: value, unit: u, quantity: q}, nil
}

// MustNew is New for literals known to be valid. It panics on error.
func (q *Quantity) MustNew(value float64, unit string) Measure {
	m, err := q.New(value, unit)
	if err != nil {
		panic(err)
	}
	return m
}

// fromBase wraps a base-unit magnitude, rejecting non-finite results of
// arithmetic.
func (q *Quantity) fromBase(base float64) (Measure, error) {
	return q.inUnit(base, q.units.Base())
}

// inUnit wraps a base-unit magnitude as a measure displayed in u.
func (q *Quantity) inUnit(base float64, u Unit) (Measure, error) {
	return q.withValue(base/u.Factor, u)
}

func (q *Quantity) withValue(value float64, u Unit) (Measure, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Measure{}, fmt.Errorf("%w: %s result is not finite", ErrInvalidOperand, q.name)
	}
	return Measure{value: value, unit: u, quantity: q}, nil
}
