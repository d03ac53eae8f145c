// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package elastic computes linear-elastic responses of an isotropic material
// from principal stresses.
package elastic

import (
	"fmt"
	"slices"

	"github.com/vk/geounits/internal/units"
)

// PrincipalStrains applies Hooke's law in principal directions:
//
//	εi = (σi − ν(σj + σk)) / E
//
// e must be a positive stress, nu must lie in (-1, 0.5) and sigma must be a
// three-element stress tensor. The result is a dimensionless strain tensor.
func PrincipalStrains(e units.Measure, nu float64, sigma *units.Tensor) (*units.Tensor, error) {
	if e.Quantity() != units.Stress {
		return nil, fmt.Errorf("%w: Young's modulus must be a stress, got %s", units.ErrDimensionMismatch, e.Dimension())
	}
	if e.BaseUnits() <= 0 {
		return nil, fmt.Errorf("%w: Young's modulus must be positive, got %s", units.ErrInvalidOperand, e)
	}
	if !(nu > -1 && nu < 0.5) {
		return nil, fmt.Errorf("%w: Poisson's ratio must be in (-1, 0.5), got %g", units.ErrInvalidOperand, nu)
	}
	if sigma == nil {
		return nil, fmt.Errorf("%w: nil stress tensor", units.ErrInvalidOperand)
	}
	if sigma.Quantity() != units.Stress {
		return nil, fmt.Errorf("%w: principal stresses must be a stress tensor, got %s", units.ErrUnsupportedOperand, sigma.Quantity())
	}
	if !slices.Equal(sigma.Shape(), []int{3}) {
		return nil, fmt.Errorf("%w: need 3 principal stresses, got shape %v", units.ErrShapeMismatch, sigma.Shape())
	}

	s := sigma.BaseValues()
	modulus := e.BaseUnits()
	eps := make([]float64, 3)
	for i := range 3 {
		j, k := (i+1)%3, (i+2)%3
		eps[i] = (s[i] - nu*(s[j]+s[k])) / modulus
	}
	return units.FromArray(units.Strain, eps, "")
}

// StrainEnergyDensity returns U = ½ Σ σi·εi. Each product is resolved
// through regs, so a registry without Stress × Strain cannot produce it.
func StrainEnergyDensity(regs *units.Registries, sigma, eps *units.Tensor) (units.Measure, error) {
	if sigma == nil || eps == nil {
		return units.Measure{}, fmt.Errorf("%w: nil tensor", units.ErrInvalidOperand)
	}
	if sigma.Size() != eps.Size() {
		return units.Measure{}, fmt.Errorf("%w: %d stresses and %d strains", units.ErrShapeMismatch, sigma.Size(), eps.Size())
	}
	if sigma.Size() == 0 {
		return units.Measure{}, fmt.Errorf("%w: empty tensors", units.ErrInvalidOperand)
	}

	stresses, strains := sigma.Measures(), eps.Measures()
	var total units.Measure
	for i := range stresses {
		work, err := regs.Multiply(stresses[i], strains[i])
		if err != nil {
			return units.Measure{}, fmt.Errorf("element %d: %w", i, err)
		}
		if i == 0 {
			total = work
			continue
		}
		if total, err = total.Add(work); err != nil {
			return units.Measure{}, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return total.MulScalar(0.5)
}
