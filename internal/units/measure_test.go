// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_BaseUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100_000.0, Stress.MustNew(100, "kPa").BaseUnits())
	assert.Equal(t, 1_000_000.0, Stress.MustNew(1, "MPa").BaseUnits())
	assert.Equal(t, 20_000.0, SpecificWeight.MustNew(20, "kN/m³").BaseUnits())
	assert.InDelta(t, 9806.65, SpecificWeight.MustNew(1, "g/cm³").BaseUnits(), 1e-9)
}

func TestMeasure_NewRejectsNonFinite(t *testing.T) {
	t.Parallel()

	_, err := Length.New(math.NaN(), "m")
	require.ErrorIs(t, err, ErrInvalidOperand)
	_, err = Length.New(math.Inf(1), "m")
	require.ErrorIs(t, err, ErrInvalidOperand)
}

func TestMeasure_Convert(t *testing.T) {
	t.Parallel()

	got, err := Stress.MustNew(1000, "kPa").Convert("MPa")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Value(), 1e-12)
	assert.Equal(t, "MPa", got.Unit().Name)
	assert.Same(t, Stress, got.Quantity())

	_, err = Stress.MustNew(1, "kPa").Convert("m")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestMeasure_ConvertRoundTrip(t *testing.T) {
	t.Parallel()

	values := []float64{0, 1, -3.5, 0.001, 12345.678}
	for _, q := range Quantities() {
		for _, a := range q.Units().Units() {
			for _, v := range values {
				m, err := q.New(v, a.Name)
				require.NoError(t, err)

				same, err := m.Convert(a.Name)
				require.NoError(t, err)
				assert.Equal(t, v, same.Value(), "%s %s identity", q, a.Name)

				for _, b := range q.Units().Units() {
					there, err := m.Convert(b.Display)
					require.NoError(t, err)
					back, err := there.Convert(a.Name)
					require.NoError(t, err)
					assert.InDelta(t, v, back.Value(), 1e-9*math.Max(1, math.Abs(v)), "%s %s→%s→%s", q, a.Name, b.Name, a.Name)
				}
			}
		}
	}
}

func TestMeasure_AddKeepsLeftUnit(t *testing.T) {
	t.Parallel()

	sum, err := Length.MustNew(2, "m").Add(Length.MustNew(50, "cm"))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, sum.Value(), 1e-12)
	assert.Equal(t, "m", sum.Unit().Name)

	sum, err = Length.MustNew(50, "cm").Add(Length.MustNew(2, "m"))
	require.NoError(t, err)
	assert.InDelta(t, 250, sum.Value(), 1e-9)
	assert.Equal(t, "cm", sum.Unit().Name)

	diff, err := Stress.MustNew(1, "MPa").Sub(Stress.MustNew(250, "kPa"))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, diff.Value(), 1e-12)
	assert.Equal(t, "MPa", diff.Unit().Name)
}

func TestMeasure_AddDifferentDimensionFails(t *testing.T) {
	t.Parallel()

	_, err := Stress.MustNew(1, "kPa").Add(Length.MustNew(1, "m"))
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "STRESS and LENGTH")

	_, err = Stress.MustNew(1, "kPa").Sub(Length.MustNew(1, "m"))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMeasure_ScalarArithmetic(t *testing.T) {
	t.Parallel()

	l := Length.MustNew(2, "m")

	got, err := l.Mul(3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.Value())
	assert.Equal(t, "m", got.Unit().Name)

	got, err = l.Mul(Scalar(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Value())

	got, err = Stress.MustNew(90, "kPa").Div(3.0)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Value())
	assert.Equal(t, "kPa", got.Unit().Name)

	_, err = l.Div(0)
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = l.MulScalar(math.NaN())
	require.ErrorIs(t, err, ErrInvalidOperand)
}

func TestMeasure_InvalidOperand(t *testing.T) {
	t.Parallel()

	_, err := Length.MustNew(1, "m").Mul("two")
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = Length.MustNew(1, "m").Div([]float64{1})
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = Measure{}.Add(Length.MustNew(1, "m"))
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = Measure{}.Convert("m")
	require.ErrorIs(t, err, ErrInvalidOperand)
}

func TestMeasure_Comparisons(t *testing.T) {
	t.Parallel()

	small := Stress.MustNew(100, "kPa")
	big := Stress.MustNew(0.2, "MPa")

	less, err := small.Less(big)
	require.NoError(t, err)
	assert.True(t, less)

	le, err := small.LessOrEqual(Stress.MustNew(0.1, "MPa"))
	require.NoError(t, err)
	assert.True(t, le)

	gt, err := big.Greater(small)
	require.NoError(t, err)
	assert.True(t, gt)

	ge, err := big.GreaterOrEqual(big)
	require.NoError(t, err)
	assert.True(t, ge)

	// Plain numbers compare against the base-unit magnitude.
	gt, err = small.Greater(99_999)
	require.NoError(t, err)
	assert.True(t, gt)

	c, err := small.Compare(100_000.0)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = small.Less(Length.MustNew(1, "m"))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	le, err = small.LessOrEqual(Length.MustNew(1, "m"))
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.False(t, le)

	_, err = small.Compare("x")
	require.ErrorIs(t, err, ErrInvalidOperand)
}

func TestMeasure_EqualityAcrossUnits(t *testing.T) {
	t.Parallel()

	assert.True(t, Stress.MustNew(1000, "kPa").Equal(Stress.MustNew(1, "MPa")))
	assert.True(t, Stress.MustNew(100, "kPa").Equal(Stress.MustNew(0.1, "MPa")))
	assert.False(t, Stress.MustNew(1, "kPa").Equal(Stress.MustNew(1, "MPa")))

	// Same base magnitude, different dimension.
	assert.False(t, Stress.MustNew(1, "Pa").Equal(Length.MustNew(1, "m")))
	assert.False(t, Measure{}.Equal(Measure{}))
}

func TestMeasure_KeyIsHashable(t *testing.T) {
	t.Parallel()

	seen := map[Key]string{}
	seen[Stress.MustNew(1000, "kPa").Key()] = "first"
	seen[Stress.MustNew(1, "MPa").Key()] = "second"
	seen[EnergyDensity.MustNew(1, "MJ/m³").Key()] = "third"

	require.Len(t, seen, 2)
	assert.Equal(t, "second", seen[Key{Dimension: DimensionStress, Base: 1e6}])
}

func TestMeasure_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "100 kPa", Stress.MustNew(100, "kPa").String())
	assert.Equal(t, "20 kN/m³", SpecificWeight.MustNew(20, "kN_m3").String())
	assert.Equal(t, "0.01", Strain.MustNew(0.01, "").String())
}
