package result

import (
	"context"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/kbukum/resultkit/config"
	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/observability"
	"github.com/kbukum/resultkit/storage"
	"github.com/kbukum/resultkit/storage/local"
	"github.com/kbukum/resultkit/template"
	"github.com/kbukum/resultkit/util"
)

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Local is a Result stored as a CBOR file under a root directory. Its
// location is a path relative to the root, optionally templated.
type Local struct {
	state
	dir      string
	template string
	store    storage.ByteClient
	log      *logger.Logger
	tel      *observability.Telemetry
}

// NewLocal returns a Local result. The root directory defaults to
// <home>/results; a root equal to the home directory itself is redirected
// there too.
func NewLocal(opts ...Option) (*Local, error) {
	return newLocal(newOptions(opts), componentLocal)
}

func newLocal(o options, component string) (*Local, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	dir := resultsDir(o.dir, o.homeDir)
	var storeOpts []local.Option
	if !o.validateDir {
		storeOpts = append(storeOpts, local.WithoutCreate())
	}
	backend, err := local.NewStorage(dir, storeOpts...)
	if err != nil {
		return nil, err
	}
	tel, err := observability.New(component, o.tracers, o.meters)
	if err != nil {
		return nil, errors.Internal(err)
	}
	l := &Local{
		dir:      backend.BasePath(),
		template: o.location,
		store:    storage.NewByteClient(backend),
		log:      componentLogger(o.log, component),
		tel:      tel,
	}
	l.location = o.location
	if o.hasValue {
		l.value, l.hasValue = o.value, true
	}
	return l, nil
}

func resultsDir(dir, home string) string {
	home = util.Coalesce(home, config.DefaultHomeDir())
	if dir == "" || filepath.Clean(dir) == filepath.Clean(home) {
		return config.DefaultResultsDir(home)
	}
	return dir
}

// Dir returns the root directory.
func (l *Local) Dir() string { return l.dir }

// Template returns the location template.
func (l *Local) Template() string { return l.template }

// Write CBOR-encodes value and stores it at the rendered location.
func (l *Local) Write(ctx context.Context, value any, params map[string]any) (Result, error) {
	loc, err := l.render(params, "")
	if err != nil {
		return nil, err
	}
	data, err := cborEnc.Marshal(value)
	if err != nil {
		return nil, errors.InvalidInput("value", "not CBOR encodable").WithCause(err)
	}
	if err := l.put(ctx, loc, data); err != nil {
		return nil, err
	}
	n := *l
	n.state = materialized(loc, value)
	return &n, nil
}

// Read loads and decodes the file at location. location may be relative to
// the root or an absolute path inside it.
func (l *Local) Read(ctx context.Context, location string) (Result, error) {
	data, err := l.get(ctx, location)
	if err != nil {
		return nil, err
	}
	var v any
	if err := cbor.Unmarshal(data, &v); err != nil {
		return nil, errors.Decode("result payload", err).WithDetail(logger.FieldLocation, location)
	}
	n := *l
	n.state = materialized(location, normalize(v))
	return &n, nil
}

// Exists reports whether a result file exists at location.
func (l *Local) Exists(ctx context.Context, location string) (bool, error) {
	return l.store.Exists(ctx, location)
}

// render expands the template, falling back to a generated name with the
// given extension when no template is configured.
func (l *Local) render(params map[string]any, ext string) (string, error) {
	if l.template == "" {
		name := "result-" + uuid.NewString()
		if ext != "" {
			name += "." + ext
		}
		return name, nil
	}
	return template.Render(l.template, params)
}

func (l *Local) put(ctx context.Context, loc string, data []byte) (err error) {
	ctx, op := l.tel.Start(ctx, observability.SpanWrite, loc)
	defer func() { op.End(ctx, len(data), err) }()

	l.log.Debug("starting to write result", logger.Fields(logger.FieldLocation, loc))
	if err := l.store.Upload(ctx, loc, data); err != nil {
		l.log.WithError(err).Warn("failed to write result", logger.Fields(logger.FieldLocation, loc))
		return err
	}
	l.log.Debug("finished writing result", l.doneFields("write", op, loc, len(data)))
	return nil
}

func (l *Local) get(ctx context.Context, loc string) (data []byte, err error) {
	ctx, op := l.tel.Start(ctx, observability.SpanRead, loc)
	defer func() { op.End(ctx, len(data), err) }()

	l.log.Debug("starting to read result", logger.Fields(logger.FieldLocation, loc))
	data, err = l.store.Download(ctx, loc)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.NotFound("result", loc).WithCause(err)
		}
		l.log.WithError(err).Warn("failed to read result", logger.Fields(logger.FieldLocation, loc))
		return nil, err
	}
	l.log.Debug("finished reading result", l.doneFields("read", op, loc, len(data)))
	return data, nil
}

func (l *Local) doneFields(op string, o *observability.Operation, loc string, size int) map[string]interface{} {
	fields := logger.DurationFields(op, o.Elapsed())
	fields[logger.FieldLocation] = loc
	fields[logger.FieldSize] = size
	return fields
}

func componentLogger(l *logger.Logger, component string) *logger.Logger {
	if l != nil {
		return l.WithComponent(component)
	}
	return logger.Get(component)
}
