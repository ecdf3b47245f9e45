package controllers

import (
	"errors"
	"fmt"

	"github.com/san-kum/fuzzylab/internal/fuzzy"
)

var (
	// ErrInputCount indicates Evaluate was called with the wrong number of inputs.
	ErrInputCount = errors.New("controllers: wrong number of inputs")

	// ErrUnknownController indicates a name missing from the registry.
	ErrUnknownController = errors.New("controllers: unknown controller")
)

// Controller maps crisp inputs to one crisp output through fuzzy rules.
// Evaluate overwrites the degrees of the controller's memberships, so a
// Controller must not be evaluated from several goroutines at once.
type Controller interface {
	Name() string
	Inputs() []Input
	Evaluate(inputs ...float64) (float64, error)
}

// Category is a labelled membership of one input.
type Category struct {
	Label string
	Fn    *fuzzy.Membership
}

// Input is one crisp input variable. Min and Max bound the range used for
// sweeps and plots; Evaluate accepts any value.
type Input struct {
	Name       string
	Unit       string
	Min, Max   float64
	Categories []Category
}

func (in Input) group() *fuzzy.Group {
	fns := make([]*fuzzy.Membership, len(in.Categories))
	for i, c := range in.Categories {
		fns[i] = c.Fn
	}
	return fuzzy.NewGroup(fns...)
}

// Mamdani is a rule base over a fixed list of inputs.
type Mamdani struct {
	name   string
	inputs []Input
	groups []*fuzzy.Group
	rules  []fuzzy.Rule
}

func NewMamdani(name string, inputs []Input, rules []fuzzy.Rule) *Mamdani {
	groups := make([]*fuzzy.Group, len(inputs))
	for i, in := range inputs {
		groups[i] = in.group()
	}
	return &Mamdani{name: name, inputs: inputs, groups: groups, rules: rules}
}

func (m *Mamdani) Name() string        { return m.name }
func (m *Mamdani) Inputs() []Input     { return m.inputs }
func (m *Mamdani) Rules() []fuzzy.Rule { return m.rules }

// Evaluate fuzzifies each input with its value, then defuzzifies the rules.
func (m *Mamdani) Evaluate(inputs ...float64) (float64, error) {
	if len(inputs) != len(m.groups) {
		return 0, fmt.Errorf("%s wants %d inputs, got %d: %w", m.name, len(m.groups), len(inputs), ErrInputCount)
	}
	for i, g := range m.groups {
		g.Fuzzify(inputs[i])
	}
	return fuzzy.DefuzzifyRuleSet(m.rules), nil
}
