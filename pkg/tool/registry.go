/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package tool contains the agent tools and their registry. Tools are
// constructed and registered explicitly at startup; there are no lazy
// singletons and no global mutable state.
package tool

import (
	"context"

	"github.com/pkg/errors"
)

type (
	// Tool executes one operation against string-keyed parameters and
	// returns serialized output. Implementations must be safe for
	// concurrent Execute calls.
	Tool interface {
		Name() string
		Execute(ctx context.Context, params map[string]string) (string, error)
	}

	Registry struct {
		tools map[string]Tool
	}
)

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t under its name. Registration happens once during startup,
// before the registry is shared, so no locking is needed.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if _, ok := r.tools[name]; ok {
		return errors.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}
