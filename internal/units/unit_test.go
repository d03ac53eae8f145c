// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitTable_Lookup(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		quantity *Quantity
		token    string
		want     string
	}{
		{name: "stress by name", quantity: Stress, token: "kPa", want: "kPa"},
		{name: "specific weight by name", quantity: SpecificWeight, token: "kN_m3", want: "kN_m3"},
		{name: "specific weight by display", quantity: SpecificWeight, token: "kN/m³", want: "kN_m3"},
		{name: "strain blank display", quantity: Strain, token: "", want: "none"},
		{name: "strain percent", quantity: Strain, token: "%", want: "percent"},
		{name: "energy density by display", quantity: EnergyDensity, token: "J/m³", want: "J_m3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u, err := tc.quantity.Units().Lookup(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, u.Name)
		})
	}
}

func TestUnitTable_LookupUnknownNamesValidTokens(t *testing.T) {
	t.Parallel()

	_, err := Length.New(1, "furlong")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownUnit)

	var unknown *UnknownUnitError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "length", unknown.Quantity)
	assert.Equal(t, "furlong", unknown.Token)
	assert.Equal(t, []string{"m", "cm", "mm", "km", "ft"}, unknown.Valid)
	assert.Contains(t, err.Error(), `"furlong" is not a length unit`)
	assert.Contains(t, err.Error(), `"cm"`)
}

func TestUnitTable_BlankOnlyForDimensionless(t *testing.T) {
	t.Parallel()

	assert.True(t, Strain.Units().HasBlankDisplay())
	assert.False(t, Stress.Units().HasBlankDisplay())

	_, err := Stress.New(1, "")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnitTable_ExactlyOneBaseUnit(t *testing.T) {
	t.Parallel()

	for _, q := range Quantities() {
		base := 0
		for _, u := range q.Units().Units() {
			if u.Factor == 1 && !u.Alias {
				base++
			}
		}
		assert.Equal(t, 1, base, "quantity %s", q)
		assert.Equal(t, 1.0, q.Units().Base().Factor, "quantity %s", q)
	}
}

func TestNewUnitTable_RejectsInvalidTables(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		units   []Unit
		wantErr string
	}{
		{
			name:    "empty",
			units:   nil,
			wantErr: "no units declared",
		},
		{
			name:    "no base unit",
			units:   []Unit{{Name: "k", Display: "k", Factor: 1000}},
			wantErr: "no unit has factor 1",
		},
		{
			name:    "two base units",
			units:   []Unit{{Name: "a", Display: "a", Factor: 1}, {Name: "b", Display: "b", Factor: 1}},
			wantErr: "both have factor 1",
		},
		{
			name:    "only an alias at factor 1",
			units:   []Unit{{Name: "a", Display: "a", Factor: 1, Alias: true}},
			wantErr: "no unit has factor 1",
		},
		{
			name:    "duplicate name",
			units:   []Unit{{Name: "a", Display: "a", Factor: 1}, {Name: "a", Display: "A", Factor: 2}},
			wantErr: `duplicate unit name "a"`,
		},
		{
			name:    "duplicate display",
			units:   []Unit{{Name: "a", Display: "x", Factor: 1}, {Name: "b", Display: "x", Factor: 2}},
			wantErr: `duplicate display string "x"`,
		},
		{
			name:    "display collides with another name",
			units:   []Unit{{Name: "a", Display: "b", Factor: 1}, {Name: "b", Display: "B", Factor: 2}},
			wantErr: `token "b"`,
		},
		{
			name:    "non-positive factor",
			units:   []Unit{{Name: "a", Display: "a", Factor: 1}, {Name: "z", Display: "z", Factor: 0}},
			wantErr: "non-positive factor",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUnitTable("test", tc.units...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestQuantityByName(t *testing.T) {
	t.Parallel()

	q, err := QuantityByName("specific_weight")
	require.NoError(t, err)
	assert.Same(t, SpecificWeight, q)

	q, err = QuantityByName("STRESS")
	require.NoError(t, err)
	assert.Same(t, Stress, q)

	_, err = QuantityByName("force")
	require.ErrorIs(t, err, ErrUnknownQuantity)
	assert.Contains(t, err.Error(), "energy_density")
}

func TestQuantityOf(t *testing.T) {
	t.Parallel()

	for _, q := range Quantities() {
		got, err := QuantityOf(q.Dimension())
		require.NoError(t, err)
		assert.Same(t, q, got)
	}

	_, err := QuantityOf(Dimension(99))
	require.ErrorIs(t, err, ErrUnknownQuantity)
	assert.Equal(t, "Dimension(99)", Dimension(99).String())
	assert.False(t, Dimension(99).Valid())
	assert.True(t, DimensionSpecificWeight.Valid())
}

func TestEnergyDensity_AcceptsPascalAliases(t *testing.T) {
	t.Parallel()

	// --- Act ---
	u, err := EnergyDensity.New(6, "kPa")
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, 6000.0, u.BaseUnits())
	assert.True(t, u.Equal(EnergyDensity.MustNew(6, "kJ/m³")))
	assert.Equal(t, "J_m3", EnergyDensity.Units().Base().Name, "aliases never become the base unit")

	back, err := u.Convert("MJ/m³")
	require.NoError(t, err)
	assert.InDelta(t, 0.006, back.Value(), 1e-15)

	pa, err := EnergyDensity.MustNew(1, "MJ_m3").Convert("Pa")
	require.NoError(t, err)
	assert.Equal(t, 1e6, pa.Value())
	assert.Same(t, EnergyDensity, pa.Quantity(), "a pascal spelling does not make it a stress")
}
