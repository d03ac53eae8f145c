// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

// BaseConvertible is anything that can report its magnitude in base units.
// Measure and Scalar implement it; Tensor.Set accepts any implementation.
type BaseConvertible interface {
	BaseUnits() float64
}

// Scalar is a plain number. Its base-unit magnitude is the number itself.
type Scalar float64

// BaseUnits returns s unchanged.
func (s Scalar) BaseUnits() float64 { return float64(s) }

// scalarOf reports whether v is a plain number and returns it.
func scalarOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case Scalar:
		return float64(n), true
	}
	return 0, false
}
