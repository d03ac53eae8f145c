package evaluator

import (
	"fmt"

	"github.com/vk/geounits/internal/units"
)

// KindNumber is the Entry kind of a plain, unitless number.
const KindNumber = "number"

// Result holds the evaluated lets of one worksheet, in declaration order.
type Result struct {
	Path    string   `json:"path" yaml:"path"`
	Entries []*Entry `json:"entries" yaml:"entries"`
}

// Entry is one evaluated let. Measures and numbers fill Value and Base;
// tensors fill Values and BaseValues.
type Entry struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        string    `json:"kind" yaml:"kind"`
	Unit        string    `json:"unit,omitempty" yaml:"unit,omitempty"`
	Value       *float64  `json:"value,omitempty" yaml:"value,omitempty"`
	Values      []float64 `json:"values,omitempty" yaml:"values,omitempty"`
	Base        *float64  `json:"base,omitempty" yaml:"base,omitempty"`
	BaseValues  []float64 `json:"base_values,omitempty" yaml:"base_values,omitempty"`
	Text        string    `json:"text" yaml:"text"`
}

func newEntry(name, description string, v any) (*Entry, error) {
	e := &Entry{Name: name, Description: description}
	switch x := v.(type) {
	case float64:
		e.Kind = KindNumber
		e.Value, e.Base = &x, &x
		e.Text = fmt.Sprintf("%g", x)
	case units.Measure:
		value, base := x.Value(), x.BaseUnits()
		e.Kind = x.Quantity().Name()
		e.Unit = x.Unit().Display
		e.Value, e.Base = &value, &base
		e.Text = x.String()
	case *units.Tensor:
		e.Kind = x.Quantity().Name()
		e.Unit = x.Unit().Display
		e.Values = x.Values()
		e.BaseValues = x.BaseValues()
		e.Text = x.String()
	default:
		return nil, fmt.Errorf("%w: let %q produced %T", units.ErrUnsupportedOperand, name, v)
	}
	return e, nil
}
