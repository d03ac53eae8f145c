package evaluator

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/geounits/internal/config"
	"github.com/vk/geounits/internal/units"
)

// sheetOf builds a sheet from name/expression pairs.
func sheetOf(t *testing.T, lets ...[2]string) *config.Sheet {
	t.Helper()
	sheet := &config.Sheet{Path: "test.hcl"}
	for i, l := range lets {
		expr, diags := hclsyntax.ParseExpression([]byte(l[1]), "test.hcl", hcl.Pos{Line: i + 1, Column: 1})
		require.False(t, diags.HasErrors(), diags.Error())
		sheet.Lets = append(sheet.Lets, &config.Let{Name: l[0], Value: expr})
	}
	return sheet
}

func TestEvaluate_ChainsLetsInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	sheet := sheetOf(t,
		[2]string{"sigma_v", `mul(measure("specific_weight", 20, "kN/m³"), measure("length", 2, "m"))`},
		[2]string{"ratio", `div(let.sigma_v, measure("stress", 10, "kPa"))`},
		[2]string{"depth", `div(let.sigma_v, measure("specific_weight", 20, "kN/m³"))`},
		[2]string{"profile", `tensor("stress", [10, 20], "kPa")`},
		[2]string{"count", `2`},
	)
	sheet.Lets[0].Unit = "kPa"
	sheet.Lets[0].Description = "vertical stress at 2 m"

	// --- Act ---
	res, err := Evaluate(context.Background(), units.Default(), sheet)

	// --- Assert ---
	require.Error(t, err, "stress over stress has no rule")
	assert.ErrorContains(t, err, `let "ratio"`)
	assert.Nil(t, res)

	sheet.Lets = append(sheet.Lets[:1], sheet.Lets[2:]...)
	res, err = Evaluate(context.Background(), units.Default(), sheet)
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)
	assert.Equal(t, "test.hcl", res.Path)

	sigma := res.Entries[0]
	assert.Equal(t, "sigma_v", sigma.Name)
	assert.Equal(t, "vertical stress at 2 m", sigma.Description)
	assert.Equal(t, "stress", sigma.Kind)
	assert.Equal(t, "kPa", sigma.Unit)
	require.NotNil(t, sigma.Value)
	assert.Equal(t, 40.0, *sigma.Value)
	assert.Equal(t, 40_000.0, *sigma.Base)
	assert.Equal(t, "40 kPa", sigma.Text)

	depth := res.Entries[1]
	assert.Equal(t, "length", depth.Kind)
	assert.Equal(t, "m", depth.Unit)
	assert.InDelta(t, 2.0, *depth.Value, 1e-12)

	profile := res.Entries[2]
	assert.Equal(t, []float64{10, 20}, profile.Values)
	assert.Equal(t, []float64{10_000, 20_000}, profile.BaseValues)
	assert.Nil(t, profile.Value)

	count := res.Entries[3]
	assert.Equal(t, KindNumber, count.Kind)
	assert.Equal(t, 2.0, *count.Value)
	assert.Empty(t, count.Unit)
}

func TestEvaluate_RejectsBadReferencesBeforeEvaluating(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		lets    [][2]string
		wantErr string
	}{
		{
			name:    "forward reference",
			lets:    [][2]string{{"a", `let.b`}, {"b", `1`}},
			wantErr: `let "a" refers to "b", which is declared later`,
		},
		{
			name:    "undefined",
			lets:    [][2]string{{"a", `let.zzz`}},
			wantErr: `refers to undefined let "zzz"`,
		},
		{
			name:    "self",
			lets:    [][2]string{{"a", `add(let.a, 1)`}},
			wantErr: `let "a" refers to itself`,
		},
		{
			name:    "unknown root",
			lets:    [][2]string{{"a", `var.x`}},
			wantErr: `unknown variable "var"`,
		},
		{
			name:    "bare root",
			lets:    [][2]string{{"a", `let`}},
			wantErr: "without naming a let",
		},
		{
			name:    "unknown function",
			lets:    [][2]string{{"a", `convert(upper("x"), "kPa")`}},
			wantErr: `let "a" calls unknown function "upper"`,
		},
		{
			name:    "errors are joined",
			lets:    [][2]string{{"a", `sqrt(let.b)`}, {"b", `1`}},
			wantErr: `calls unknown function "sqrt"` + "\n" + `test.hcl:1,6`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Evaluate(context.Background(), units.Default(), sheetOf(t, tc.lets...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Contains(t, err.Error(), "worksheet test.hcl")
		})
	}
}

func TestEvaluate_UnitConversionErrors(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(t, [2]string{"n", `3`})
	sheet.Lets[0].Unit = "m"
	_, err := Evaluate(context.Background(), units.Default(), sheet)
	require.ErrorIs(t, err, units.ErrInvalidOperand)

	sheet = sheetOf(t, [2]string{"l", `measure("length", 3, "m")`})
	sheet.Lets[0].Unit = "kPa"
	_, err = Evaluate(context.Background(), units.Default(), sheet)
	require.ErrorIs(t, err, units.ErrUnknownUnit)
}

func TestEvaluate_ConvertedValueIsVisibleToLaterLets(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(t,
		[2]string{"l", `measure("length", 1500, "mm")`},
		[2]string{"twice", `mul(let.l, 2)`},
	)
	sheet.Lets[0].Unit = "m"

	res, err := Evaluate(context.Background(), units.Default(), sheet)
	require.NoError(t, err)
	assert.Equal(t, "m", res.Entries[1].Unit)
	assert.InDelta(t, 3.0, *res.Entries[1].Value, 1e-12)
}

func TestEvaluate_HonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evaluate(ctx, units.Default(), sheetOf(t, [2]string{"a", `1`}))
	require.ErrorIs(t, err, context.Canceled)
}
