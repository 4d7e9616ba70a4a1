// Package validation checks result configuration before it is used.
//
// Struct tag validation (using the validator library) covers serializable
// configuration such as result descriptors:
//
//	type Descriptor struct {
//	    Type       string `validate:"required"`
//	    SecretName string `validate:"required_if=Type secret"`
//	}
//	err := validation.Validate(d)
//
// Programmatic validation collects field errors and reports them together:
//
//	v := validation.New()
//	v.Min("write_options.indent", opts.Indent, 0)
//	err := v.Error()
//
// Both return INVALID_INPUT errors whose details list the offending fields.
package validation
