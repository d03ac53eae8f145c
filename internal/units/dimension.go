// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import "fmt"

// Dimension identifies the physical kind of a quantity.
type Dimension int

const (
	DimensionLength Dimension = iota + 1
	DimensionStress
	DimensionSpecificWeight
	DimensionStrain
	DimensionEnergyDensity
)

var dimensionNames = map[Dimension]string{
	DimensionLength:         "LENGTH",
	DimensionStress:         "STRESS",
	DimensionSpecificWeight: "SPECIFIC_WEIGHT",
	DimensionStrain:         "STRAIN",
	DimensionEnergyDensity:  "ENERGY_DENSITY",
}

// String returns the upper-case tag name, e.g. "SPECIFIC_WEIGHT".
func (d Dimension) String() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Valid reports whether d is one of the declared dimensions.
func (d Dimension) Valid() bool {
	_, ok := dimensionNames[d]
	return ok
}
