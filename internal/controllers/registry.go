package controllers

import (
	"fmt"
	"sort"
)

// Factory builds a fresh controller with its own memberships.
type Factory func() Controller

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("tipper", func() Controller { return NewTipper() })
	r.Register("food_tipper", func() Controller { return NewFoodTipper() })
	r.Register("pendulum", func() Controller { return NewPendulumStabilizer(DefaultGain, 0) })

	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) Factory(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownController)
	}
	return f, nil
}

func (r *Registry) Get(name string) (Controller, error) {
	f, err := r.Factory(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
