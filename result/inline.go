package result

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kbukum/resultkit/errors"
)

// Inline is a Result that stores its value in its own location as JSON. No
// external storage is involved.
type Inline struct {
	state
}

// NewInline returns an Inline result. WithValue seeds a value; the location
// stays empty until the value is written.
func NewInline(opts ...Option) *Inline {
	o := newOptions(opts)
	return &Inline{state: state{value: o.value, hasValue: o.hasValue}}
}

// Write encodes value as JSON and returns a Result whose location is the
// encoding. Map keys are sorted, so equal values produce equal locations.
func (r *Inline) Write(_ context.Context, value any, _ map[string]any) (Result, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, errors.InvalidInput("value", fmt.Sprintf("not JSON encodable: %v", err)).WithCause(err)
	}
	n := *r
	n.state = materialized(string(b), value)
	return &n, nil
}

// Read decodes location. Numbers decode to int64 when integral and float64
// otherwise. A location that is not JSON yields NOT_FOUND.
func (r *Inline) Read(_ context.Context, location string) (Result, error) {
	v, err := decodeJSON(location)
	if err != nil {
		return nil, errors.NotFound("inline result", location).
			WithCause(errors.Decode("inline location", err))
	}
	n := *r
	n.state = materialized(location, v)
	return &n, nil
}

// Exists reports whether location is a valid JSON document.
func (r *Inline) Exists(_ context.Context, location string) (bool, error) {
	return json.Valid([]byte(location)), nil
}

// ExistsValue reports whether v is textual JSON. Native Go values are never
// an encoding and report false.
func (r *Inline) ExistsValue(v any) bool {
	switch x := v.(type) {
	case string:
		return json.Valid([]byte(x))
	case []byte:
		return json.Valid(x)
	case json.RawMessage:
		return json.Valid(x)
	}
	return false
}

func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return normalize(v), nil
}
