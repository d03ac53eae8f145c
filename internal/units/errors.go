// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a unit token does not resolve against a
	// quantity's unit table.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDimensionMismatch is returned by add, subtract and compare between
	// measures of different dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNoRegisteredRule is returned when no registry entry exists for a pair
	// of dimensions.
	ErrNoRegisteredRule = errors.New("no registered rule")
	// ErrInvalidOperand is returned when an operand has a type or value the
	// operation does not support.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrShapeMismatch is returned by elementwise tensor operations between
	// tensors of different shapes.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnsupportedOperand is returned when a tensor operand holds a
	// different quantity.
	ErrUnsupportedOperand = errors.New("unsupported operand")
	// ErrInvalidUnitForTensor is returned when a tensor's display unit is not
	// part of its element quantity's unit table.
	ErrInvalidUnitForTensor = errors.New("invalid unit for tensor")
	// ErrIndexOutOfRange is returned by tensor indexing outside its shape.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrRuleConflict is returned when a dimension pair is registered twice
	// with different results.
	ErrRuleConflict = errors.New("conflicting rule")
	// ErrRegistrySealed is returned when registering into a sealed registry.
	ErrRegistrySealed = errors.New("registry is sealed")
	// ErrAlreadyInitialized is returned by Init once the default registries
	// exist.
	ErrAlreadyInitialized = errors.New("default registries already initialized")
	// ErrUnknownQuantity is returned by QuantityByName for unknown names.
	ErrUnknownQuantity = errors.New("unknown quantity")
)

// UnknownUnitError reports a unit token that matched neither a name nor a
// display string of a quantity's table.
type UnknownUnitError struct {
	Quantity string
	Token    string
	Valid    []string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("%s: %q is not a %s unit (valid: %s)",
		ErrUnknownUnit, e.Token, e.Quantity, strings.Join(quoteAll(e.Valid), ", "))
}

// Is makes errors.Is(err, ErrUnknownUnit) hold.
func (e *UnknownUnitError) Is(target error) bool {
	return target == ErrUnknownUnit
}

func quoteAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = fmt.Sprintf("%q", t)
	}
	return out
}
