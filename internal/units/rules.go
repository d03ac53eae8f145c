// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import "errors"

// CoreRules registers the built-in cross-dimension relationships. Stress ×
// Stress and Stress ÷ Stress have no rule.
var CoreRules Module = ModuleFunc(registerCoreRules)

func registerCoreRules(r *Registries) error {
	mul := r.Multiplication
	div := r.Division
	return errors.Join(
		// γ·z = σ
		mul.Register(SpecificWeight, Length, Stress, true),
		// ε·L = ΔL
		mul.Register(Length, Strain, Length, true),
		// σ·ε = u
		mul.Register(Stress, Strain, EnergyDensity, true),

		div.Register(Stress, Length, SpecificWeight),
		div.Register(Stress, Strain, Stress),
		div.Register(Length, Length, Strain),
		div.Register(Stress, SpecificWeight, Length),
		div.Register(EnergyDensity, Strain, Stress),
	)
}
