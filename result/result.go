package result

import (
	"context"
)

// Result is a handle to a value that may be persisted somewhere. A
// configured Result carries only its location template; Write and Read
// return materialized copies.
type Result interface {
	// Location returns where the value lives, or "" when unset.
	Location() string
	// Value returns the materialized value, which may itself be nil.
	Value() any
	// HasValue distinguishes a materialized nil from a value never set.
	HasValue() bool
	// Read loads the value at location into a new Result.
	Read(ctx context.Context, location string) (Result, error)
	// Write persists value, rendering the location template with params,
	// and returns a new Result holding both.
	Write(ctx context.Context, value any, params map[string]any) (Result, error)
	// Exists reports whether a value is retrievable at location.
	Exists(ctx context.Context, location string) (bool, error)
}

// state is the part every variant shares. It is embedded by value so that
// copying a variant copies its state.
type state struct {
	location string
	value    any
	hasValue bool
}

func (s state) Location() string { return s.location }
func (s state) Value() any       { return s.value }
func (s state) HasValue() bool   { return s.hasValue }

func materialized(location string, value any) state {
	return state{location: location, value: value, hasValue: true}
}

var (
	_ Result = (*Constant)(nil)
	_ Result = (*Inline)(nil)
	_ Result = (*Secret)(nil)
	_ Result = (*Local)(nil)
	_ Result = (*Tabular)(nil)
)
