package result

import (
	"context"

	"github.com/kbukum/resultkit/errors"
)

// Constant is a Result whose value is fixed at construction. It is never
// persisted and cannot be written.
type Constant struct {
	state
}

// NewConstant returns a Constant holding value.
func NewConstant(value any) *Constant {
	return &Constant{state: state{value: value, hasValue: true}}
}

// Read ignores location and returns the receiver itself.
func (c *Constant) Read(context.Context, string) (Result, error) {
	return c, nil
}

// Write always fails, including for the value the Constant already holds.
func (c *Constant) Write(context.Context, any, map[string]any) (Result, error) {
	return nil, errors.ImmutableWrite(TypeConstant)
}

// Exists is always true.
func (c *Constant) Exists(context.Context, string) (bool, error) {
	return true, nil
}
