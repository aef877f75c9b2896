package model

import (
	"fmt"
	"sort"
)

// Registry maps model names to constructors. Constructors return fresh
// instances so runs never share parameter state.
type Registry struct {
	models map[string]func() Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() Model)}
	r.models["decay"] = func() Model { return NewDecay() }
	r.models["oscillator"] = func() Model { return NewHarmonicOscillator() }
	r.models["vanderpol"] = func() Model { return NewVanDerPol() }
	r.models["lorenz"] = func() Model { return NewLorenz() }
	return r
}

func (r *Registry) Get(name string) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
