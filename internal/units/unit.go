// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"errors"
	"fmt"
	"math"
)

// Unit is one named variant of a quantity. Factor converts one unit of this
// variant into the quantity's base unit. An Alias is an alternative spelling
// accepted on input; it never becomes the base unit.
type Unit struct {
	Name    string
	Display string
	Factor  float64
	Alias   bool
}

// String returns the display string.
func (u Unit) String() string {
	return u.Display
}

// UnitTable is the closed set of units a quantity accepts. It is built once
// and never mutated.
type UnitTable struct {
	quantity string
	units    []Unit
	base     int
	byName   map[string]int
	byLabel  map[string]int
}

// NewUnitTable validates and indexes units for the named quantity. Names and
// display strings must be distinct, no token may resolve to two different
// units, factors must be positive and finite, and exactly one non-alias unit
// must have a factor of 1.
func NewUnitTable(quantity string, units ...Unit) (*UnitTable, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("unit table %s: no units declared", quantity)
	}

	t := &UnitTable{
		quantity: quantity,
		units:    append([]Unit(nil), units...),
		base:     -1,
		byName:   make(map[string]int, len(units)),
		byLabel:  make(map[string]int, len(units)),
	}

	var errs []error
	for i, u := range t.units {
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("unit #%d has an empty name", i))
		}
		if math.IsNaN(u.Factor) || math.IsInf(u.Factor, 0) || u.Factor <= 0 {
			errs = append(errs, fmt.Errorf("unit %q has non-positive factor %g", u.Name, u.Factor))
		}
		if u.Factor == 1 && !u.Alias {
			if t.base >= 0 {
				errs = append(errs, fmt.Errorf("units %q and %q both have factor 1", t.units[t.base].Name, u.Name))
			} else {
				t.base = i
			}
		}
		if _, dup := t.byName[u.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate unit name %q", u.Name))
		}
		t.byName[u.Name] = i
		if _, dup := t.byLabel[u.Display]; dup {
			errs = append(errs, fmt.Errorf("duplicate display string %q", u.Display))
		}
		t.byLabel[u.Display] = i
	}
	if t.base < 0 {
		errs = append(errs, errors.New("no unit has factor 1"))
	}

	// A display string may equal its own unit's name but never another unit's.
	for label, i := range t.byLabel {
		if j, ok := t.byName[label]; ok && i != j {
			errs = append(errs, fmt.Errorf("token %q names %q but displays %q", label, t.units[j].Name, t.units[i].Name))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("unit table %s: %w", quantity, errors.Join(errs...))
	}
	return t, nil
}

func mustUnitTable(quantity string, units ...Unit) *UnitTable {
	t, err := NewUnitTable(quantity, units...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves a token by exact name first, then by exact display string.
func (t *UnitTable) Lookup(token string) (Unit, error) {
	if i, ok := t.byName[token]; ok {
		return t.units[i], nil
	}
	if i, ok := t.byLabel[token]; ok {
		return t.units[i], nil
	}
	return Unit{}, &UnknownUnitError{Quantity: t.quantity, Token: token, Valid: t.Tokens()}
}

// Base returns the unit whose factor is 1.
func (t *UnitTable) Base() Unit {
	return t.units[t.base]
}

// Units returns the declared units in declaration order.
func (t *UnitTable) Units() []Unit {
	return append([]Unit(nil), t.units...)
}

// Contains reports whether u is a member of the table.
func (t *UnitTable) Contains(u Unit) bool {
	i, ok := t.byName[u.Name]
	return ok && t.units[i] == u
}

// HasBlankDisplay reports whether some unit displays as the empty string, as
// dimensionless quantities do.
func (t *UnitTable) HasBlankDisplay() bool {
	_, ok := t.byLabel[""]
	return ok
}

// Tokens lists every accepted token: names in declaration order followed by
// display strings that differ from their name.
func (t *UnitTable) Tokens() []string {
	out := make([]string, 0, 2*len(t.units))
	for _, u := range t.units {
		out = append(out, u.Name)
	}
	for _, u := range t.units {
		if u.Display != u.Name {
			out = append(out, u.Display)
		}
	}
	return out
}
