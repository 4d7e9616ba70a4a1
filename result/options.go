package result

import (
	"unicode"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/tabular"
	"github.com/kbukum/resultkit/template"
	"github.com/kbukum/resultkit/validation"
)

// Option configures a Result constructor. Options that do not apply to a
// variant are ignored.
type Option func(*options)

type options struct {
	value       any
	hasValue    bool
	location    string
	dir         string
	homeDir     string
	validateDir bool
	fileType    string
	readOpts    tabular.Options
	writeOpts   tabular.Options
	registry    *tabular.Registry
	log         *logger.Logger
	tracers     trace.TracerProvider
	meters      metric.MeterProvider
}

func newOptions(opts []Option) options {
	o := options{validateDir: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validate rejects option values that would only fail at write or read time.
func (o options) validate() error {
	v := validation.New()
	if _, err := template.Placeholders(o.location); err != nil {
		v.AddError("location", "malformed template")
	}
	codecs := []struct {
		field string
		opts  tabular.Options
	}{
		{"read_options", o.readOpts},
		{"write_options", o.writeOpts},
	}
	for _, c := range codecs {
		v.Min(c.field+".indent", c.opts.Indent, 0)
		v.Custom(validDelimiter(c.opts.Delimiter), c.field+".delimiter", "must be a single printable separator")
	}
	return v.Error()
}

func validDelimiter(r rune) bool {
	switch r {
	case 0:
		return true
	case '\r', '\n', '"', 0xFFFD:
		return false
	}
	return unicode.IsPrint(r) || r == '\t'
}

// WithValue seeds the Result with an already materialized value.
func WithValue(v any) Option {
	return func(o *options) {
		o.value = v
		o.hasValue = true
	}
}

// WithLocation sets the location template, e.g. "{flow}/{task}.csv".
func WithLocation(tmpl string) Option {
	return func(o *options) { o.location = tmpl }
}

// WithDir sets the root directory file-backed results are stored under.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithHomeDir overrides the home directory the default root is derived from.
func WithHomeDir(home string) Option {
	return func(o *options) { o.homeDir = home }
}

// WithValidateDir controls whether the root directory is made absolute and
// created at construction (default true).
func WithValidateDir(validate bool) Option {
	return func(o *options) { o.validateDir = validate }
}

// WithFileType selects the tabular format (default "csv").
func WithFileType(ft string) Option {
	return func(o *options) { o.fileType = ft }
}

// WithReadOptions sets the codec options used when reading tabular values.
func WithReadOptions(opts tabular.Options) Option {
	return func(o *options) { o.readOpts = opts }
}

// WithWriteOptions sets the codec options used when writing tabular values.
func WithWriteOptions(opts tabular.Options) Option {
	return func(o *options) { o.writeOpts = opts }
}

// WithRegistry replaces the default tabular codec registry.
func WithRegistry(reg *tabular.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger sets the logger used by file-backed results.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the provider file-backed results start spans on.
// The otel global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracers = tp }
}

// WithMeterProvider sets the provider file-backed results record metrics on.
// The otel global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meters = mp }
}
