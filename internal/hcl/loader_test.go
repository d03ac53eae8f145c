package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/geounits/internal/testutil"
	"github.com/vk/geounits/internal/units"
)

const footingSheet = `
rule "multiply" {
  left      = "stress"
  right     = "length"
  result    = "energy_density"
  symmetric = false
}

rule "divide" {
  left   = "energy_density"
  right  = "length"
  result = "stress"
}

let "sigma_v" {
  description = "vertical stress at 2 m"
  value       = mul(measure("specific_weight", 20, "kN/m³"), measure("length", 2, "m"))
  unit        = "kPa"
}

let "ratio" {
  value = div(let.sigma_v, measure("stress", 10, "kPa"))
}
`

func TestLoader_LoadTranslatesBlocks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "footing.hcl", footingSheet)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Sheets, 1)
	sheet := model.Sheets[0]
	assert.Equal(t, path, sheet.Path)

	require.Len(t, sheet.Rules, 2)
	mul := sheet.Rules[0]
	assert.Equal(t, units.OpMultiply, mul.Operator)
	assert.Same(t, units.Stress, mul.Left)
	assert.Same(t, units.Length, mul.Right)
	assert.Same(t, units.EnergyDensity, mul.Result)
	assert.False(t, mul.Symmetric)
	assert.Equal(t, 2, mul.Range.Start.Line)

	div := sheet.Rules[1]
	assert.Equal(t, units.OpDivide, div.Operator)
	assert.False(t, div.Symmetric)

	require.Len(t, sheet.Lets, 2)
	assert.Equal(t, "sigma_v", sheet.Lets[0].Name)
	assert.Equal(t, "vertical stress at 2 m", sheet.Lets[0].Description)
	assert.Equal(t, "kPa", sheet.Lets[0].Unit)
	require.NotNil(t, sheet.Lets[0].Value)
	assert.Equal(t, "ratio", sheet.Lets[1].Name)
	assert.Empty(t, sheet.Lets[1].Unit)
}

func TestLoader_MultiplyRulesDefaultToSymmetric(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "sym.hcl", `
rule "multiply" {
  left   = "stress"
  right  = "length"
  result = "energy_density"
}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Rules(), 1)
	assert.True(t, model.Rules()[0].Symmetric)
}

func TestLoader_FilesLoadInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.hcl", `let "b" { value = 1 }`)
	testutil.WriteFile(t, dir, "a.hcl", `let "a" { value = 1 }`)
	testutil.WriteFile(t, dir, "nested/c.hcl", `let "c" { value = 1 }`)
	testutil.WriteFile(t, dir, "ignored.txt", `not hcl`)

	model, err := NewLoader().Load(context.Background(), dir, filepath.Join(dir, "a.hcl"))
	require.NoError(t, err)

	var names []string
	for _, s := range model.Sheets {
		names = append(names, s.Lets[0].Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `let "x" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			src:     `step "print" "a" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name: "unknown operator",
			src: `rule "add" {
  left   = "stress"
  right  = "stress"
  result = "stress"
}`,
			wantErr: `unknown operator "add"`,
		},
		{
			name: "unknown quantity",
			src: `rule "multiply" {
  left   = "force"
  right  = "length"
  result = "stress"
}`,
			wantErr: `"force"`,
		},
		{
			name: "symmetric divide",
			src: `rule "divide" {
  left      = "stress"
  right     = "length"
  result    = "specific_weight"
  symmetric = true
}`,
			wantErr: "divide rules cannot be symmetric",
		},
		{
			name:    "missing value",
			src:     `let "x" { unit = "m" }`,
			wantErr: "value",
		},
		{
			name: "duplicate let",
			src: `let "x" { value = 1 }
let "x" { value = 2 }`,
			wantErr: `duplicate let "x"`,
		},
		{
			name:    "invalid let name",
			src:     `let "not a name" { value = 1 }`,
			wantErr: "not a valid identifier",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "sheet.hcl", tc.src)

			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Contains(t, err.Error(), "sheet.hcl")
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
