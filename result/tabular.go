package result

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/resultkit/config"
	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/tabular"
	"github.com/kbukum/resultkit/util"
)

// Tabular is a Local result whose value is a tabular.Frame stored in one of
// the registry's file formats.
type Tabular struct {
	Local
	fileType  string
	readOpts  tabular.Options
	writeOpts tabular.Options
	registry  *tabular.Registry
}

// NewTabular returns a Tabular result. It fails with UNSUPPORTED_FORMAT when
// the file type has no codec pair in the registry.
func NewTabular(opts ...Option) (*Tabular, error) {
	o := newOptions(opts)
	reg := o.registry
	if reg == nil {
		reg = tabular.DefaultRegistry()
	}
	ft := strings.ToLower(util.Coalesce(o.fileType, config.DefaultFileType))
	if !reg.Supports(ft) {
		return nil, errors.UnsupportedFormat(ft, reg.Formats())
	}
	l, err := newLocal(o, componentTabular)
	if err != nil {
		return nil, err
	}
	l.log = l.log.WithFields(logger.Fields(logger.FieldFileType, ft))
	return &Tabular{
		Local:     *l,
		fileType:  ft,
		readOpts:  o.readOpts,
		writeOpts: o.writeOpts,
		registry:  reg,
	}, nil
}

// FileType returns the lowercase format name.
func (t *Tabular) FileType() string { return t.fileType }

// Write encodes value, a *tabular.Frame or tabular.Frame, and stores it at
// the rendered location.
func (t *Tabular) Write(ctx context.Context, value any, params map[string]any) (Result, error) {
	frame, err := asFrame(value)
	if err != nil {
		return nil, err
	}
	write, ok := t.registry.Writer(t.fileType)
	if !ok {
		return nil, errors.UnsupportedFormat(t.fileType, t.registry.Formats())
	}
	loc, err := t.render(params, t.fileType)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := write(&buf, frame, t.writeOpts); err != nil {
		return nil, errors.InvalidInput("value", fmt.Sprintf("cannot encode as %s", t.fileType)).WithCause(err)
	}
	if err := t.put(ctx, loc, buf.Bytes()); err != nil {
		return nil, err
	}
	n := *t
	n.state = materialized(loc, value)
	return &n, nil
}

// Read decodes the file at location into a *tabular.Frame.
func (t *Tabular) Read(ctx context.Context, location string) (Result, error) {
	read, ok := t.registry.Reader(t.fileType)
	if !ok {
		return nil, errors.UnsupportedFormat(t.fileType, t.registry.Formats())
	}
	data, err := t.get(ctx, location)
	if err != nil {
		return nil, err
	}
	frame, err := read(bytes.NewReader(data), t.readOpts)
	if err != nil {
		return nil, errors.Decode(t.fileType+" result", err).WithDetail(logger.FieldLocation, location)
	}
	n := *t
	n.state = materialized(location, frame)
	return &n, nil
}

func asFrame(value any) (*tabular.Frame, error) {
	switch f := value.(type) {
	case *tabular.Frame:
		if f != nil {
			return f, nil
		}
	case tabular.Frame:
		return &f, nil
	}
	return nil, errors.InvalidInput("value", fmt.Sprintf("expected *tabular.Frame, got %T", value))
}
