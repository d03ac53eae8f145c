// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package units is the dimensional-analysis engine behind geounits. It models
// physical quantities (stress, length, specific weight, strain, energy
// density), the unit variants each one accepts, and the rules deciding which
// pairs of dimensions may be multiplied or divided.
//
// # Core Concepts
//
//   - Dimension: a closed tag naming the physical kind of a value.
//
//   - Quantity: the definition of one kind of measure. It owns a Dimension and
//     a UnitTable. The package-level Length, Stress, SpecificWeight, Strain and
//     EnergyDensity values are the only quantities the engine knows about.
//
//   - Measure: an immutable (value, unit) pair bound to a Quantity. Same-kind
//     arithmetic (Add, Sub, comparisons) is resolved locally. Cross-kind
//     multiplication and division are never hard-coded; they go through the
//     operator registries.
//
//   - Registries: a MultiplicationRegistry and a DivisionRegistry keyed by
//     ordered pairs of dimensions. They are populated once at start-up by
//     Modules (CoreRules is the built-in one), sealed, and read without locks
//     afterwards. Default returns the process-wide set; callers that need a
//     different rule set build their own with NewRegistries and pass it to the
//     *In variants of Mul and Div.
//
//   - Tensor: a dense, fixed-unit array of one Quantity. Data is always stored
//     in base units; the unit is a display label only.
package units
