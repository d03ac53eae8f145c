// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Operator names the arithmetic a registry resolves.
type Operator string

const (
	OpMultiply Operator = "multiply"
	OpDivide   Operator = "divide"
)

// Symbol returns the operator's mathematical sign.
func (o Operator) Symbol() string {
	if o == OpDivide {
		return "÷"
	}
	return "×"
}

// ParseOperator maps "multiply" or "divide" to its Operator.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpMultiply, OpDivide:
		return op, nil
	}
	return "", fmt.Errorf("unknown operator %q (valid: %q, %q)", s, OpMultiply, OpDivide)
}

// Rule states that Left <op> Right yields Result.
type Rule struct {
	Operator Operator
	Left     Dimension
	Right    Dimension
	Result   *Quantity
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s → %s", r.Left, r.Operator.Symbol(), r.Right, r.Result.dimension)
}

type ruleKey struct {
	left, right Dimension
}

// ruleTable is a copy-on-write map of rules. Writers serialize on mu and
// publish a fresh map; readers load the current map without locking.
type ruleTable struct {
	op     Operator
	mu     sync.Mutex
	rules  atomic.Pointer[map[ruleKey]Rule]
	sealed atomic.Bool
}

func newRuleTable(op Operator) *ruleTable {
	t := &ruleTable{op: op}
	empty := make(map[ruleKey]Rule)
	t.rules.Store(&empty)
	return t
}

func (t *ruleTable) add(left, right, result *Quantity, symmetric bool) error {
	if left == nil || right == nil || result == nil {
		return fmt.Errorf("%w: %s rule needs three quantities", ErrInvalidOperand, t.op)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed.Load() {
		return fmt.Errorf("%w: cannot add %s rule %s %s %s", ErrRegistrySealed, t.op, left.dimension, t.op.Symbol(), right.dimension)
	}

	keys := []ruleKey{{left.dimension, right.dimension}}
	if symmetric && left.dimension != right.dimension {
		keys = append(keys, ruleKey{right.dimension, left.dimension})
	}

	next := maps.Clone(*t.rules.Load())
	for _, k := range keys {
		if existing, ok := next[k]; ok {
			if existing.Result != result {
				return fmt.Errorf("%w: %s %s %s already yields %s, not %s",
					ErrRuleConflict, k.left, t.op.Symbol(), k.right, existing.Result.dimension, result.dimension)
			}
			continue
		}
		next[k] = Rule{Operator: t.op, Left: k.left, Right: k.right, Result: result}
	}
	t.rules.Store(&next)

	slog.Debug("Registering operator rule.",
		"operator", string(t.op),
		"left", left.dimension.String(),
		"right", right.dimension.String(),
		"result", result.dimension.String(),
		"symmetric", symmetric,
	)
	return nil
}

// Resolve applies the rule registered for the operands' dimensions to their
// base-unit magnitudes and returns the result in its base unit.
func (t *ruleTable) Resolve(a, b Measure) (Measure, error) {
	if err := a.check(); err != nil {
		return Measure{}, err
	}
	if err := b.check(); err != nil {
		return Measure{}, err
	}
	result, err := t.ResultOf(a.Dimension(), b.Dimension())
	if err != nil {
		return Measure{}, err
	}

	var base float64
	switch t.op {
	case OpDivide:
		if b.BaseUnits() == 0 {
			return Measure{}, fmt.Errorf("%w: %s divided by zero %s", ErrInvalidOperand, a.quantity, b.quantity)
		}
		base = a.BaseUnits() / b.BaseUnits()
	default:
		base = a.BaseUnits() * b.BaseUnits()
	}
	return result.fromBase(base)
}

// ResultOf returns the quantity registered for left <op> right.
func (t *ruleTable) ResultOf(left, right Dimension) (*Quantity, error) {
	rule, ok := (*t.rules.Load())[ruleKey{left, right}]
	if !ok {
		return nil, fmt.Errorf("%w: no %s rule for %s %s %s", ErrNoRegisteredRule, t.op, left, t.op.Symbol(), right)
	}
	return rule.Result, nil
}

// Rules lists the registered rules ordered by operand dimensions.
func (t *ruleTable) Rules() []Rule {
	rules := slices.Collect(maps.Values(*t.rules.Load()))
	slices.SortFunc(rules, func(a, b Rule) int {
		if c := cmp.Compare(a.Left, b.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.Right, b.Right)
	})
	return rules
}

// Seal stops further registration. Lookups are unaffected.
func (t *ruleTable) Seal() { t.sealed.Store(true) }

// Sealed reports whether Seal was called.
func (t *ruleTable) Sealed() bool { return t.sealed.Load() }

// MultiplicationRegistry maps ordered dimension pairs to the quantity their
// product yields.
type MultiplicationRegistry struct {
	*ruleTable
}

// NewMultiplicationRegistry returns an empty, unsealed registry.
func NewMultiplicationRegistry() *MultiplicationRegistry {
	return &MultiplicationRegistry{newRuleTable(OpMultiply)}
}

// Register declares left × right → result. When symmetric is true the
// reversed pair is registered as well.
func (r *MultiplicationRegistry) Register(left, right, result *Quantity, symmetric bool) error {
	return r.add(left, right, result, symmetric)
}

// DivisionRegistry maps ordered dimension pairs to the quantity their
// quotient yields. Nothing is derived from multiplication rules.
type DivisionRegistry struct {
	*ruleTable
}

// NewDivisionRegistry returns an empty, unsealed registry.
func NewDivisionRegistry() *DivisionRegistry {
	return &DivisionRegistry{newRuleTable(OpDivide)}
}

// Register declares numerator ÷ denominator → result.
func (r *DivisionRegistry) Register(numerator, denominator, result *Quantity) error {
	return r.add(numerator, denominator, result, false)
}

// Module is a unit of rule registration, applied once at start-up.
type Module interface {
	Register(r *Registries) error
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(r *Registries) error

// Register calls f(r).
func (f ModuleFunc) Register(r *Registries) error { return f(r) }

// Registries bundles the multiplication and division registries that Measure
// and Tensor arithmetic resolve against.
type Registries struct {
	Multiplication *MultiplicationRegistry
	Division       *DivisionRegistry
}

// NewRegistries applies every module to a fresh pair of registries and seals
// them. On error nothing is returned, so a partially populated set never
// escapes.
func NewRegistries(modules ...Module) (*Registries, error) {
	r := &Registries{
		Multiplication: NewMultiplicationRegistry(),
		Division:       NewDivisionRegistry(),
	}
	for _, mod := range modules {
		if err := mod.Register(r); err != nil {
			return nil, fmt.Errorf("registering %T: %w", mod, err)
		}
	}
	r.Seal()
	slog.Debug("Operator registries sealed.",
		"modules", len(modules),
		"multiplication_rules", len(r.Multiplication.Rules()),
		"division_rules", len(r.Division.Rules()),
	)
	return r, nil
}

// Seal stops registration on both registries.
func (r *Registries) Seal() {
	r.Multiplication.Seal()
	r.Division.Seal()
}

// Multiply resolves a × b. A nil receiver has no rules.
func (r *Registries) Multiply(a, b Measure) (Measure, error) {
	if r == nil || r.Multiplication == nil {
		return Measure{}, fmt.Errorf("%w: no multiplication registry for %s × %s", ErrNoRegisteredRule, a.Dimension(), b.Dimension())
	}
	return r.Multiplication.Resolve(a, b)
}

// Divide resolves a ÷ b. A nil receiver has no rules.
func (r *Registries) Divide(a, b Measure) (Measure, error) {
	if r == nil || r.Division == nil {
		return Measure{}, fmt.Errorf("%w: no division registry for %s ÷ %s", ErrNoRegisteredRule, a.Dimension(), b.Dimension())
	}
	return r.Division.Resolve(a, b)
}

func (r *Registries) resultOf(op Operator, left, right Dimension) (*Quantity, error) {
	if r != nil {
		switch {
		case op == OpMultiply && r.Multiplication != nil:
			return r.Multiplication.ResultOf(left, right)
		case op == OpDivide && r.Division != nil:
			return r.Division.ResultOf(left, right)
		}
	}
	return nil, fmt.Errorf("%w: no %s registry for %s %s %s", ErrNoRegisteredRule, op, left, op.Symbol(), right)
}

// Rules lists multiplication rules followed by division rules. Missing
// registries contribute nothing.
func (r *Registries) Rules() []Rule {
	if r == nil {
		return nil
	}
	var rules []Rule
	if r.Multiplication != nil {
		rules = append(rules, r.Multiplication.Rules()...)
	}
	if r.Division != nil {
		rules = append(rules, r.Division.Rules()...)
	}
	return rules
}

var (
	defaultOnce sync.Once
	defaultRegs *Registries
	defaultErr  error
)

// Init builds the process-wide registries from modules (CoreRules when none
// are given). Only the first call does anything; later calls, and calls made
// after Default already initialized the set, return ErrAlreadyInitialized. If
// a module fails, the default set stays empty and every resolution reports
// ErrNoRegisteredRule.
func Init(modules ...Module) error {
	ran := false
	defaultOnce.Do(func() {
		ran = true
		if len(modules) == 0 {
			modules = []Module{CoreRules}
		}
		defaultRegs, defaultErr = NewRegistries(modules...)
		if defaultErr != nil {
			defaultRegs, _ = NewRegistries()
		}
	})
	if !ran {
		return ErrAlreadyInitialized
	}
	return defaultErr
}

// Default returns the process-wide registries, initializing them with
// CoreRules if Init was never called.
func Default() *Registries {
	_ = Init()
	return defaultRegs
}
