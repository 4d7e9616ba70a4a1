package result

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/logger"
	"github.com/kbukum/resultkit/tabular"
	"github.com/kbukum/resultkit/validation"
)

// Built-in result types.
const (
	TypeConstant = "constant"
	TypeInline   = "inline"
	TypeLocal    = "local"
	TypeTabular  = "tabular"
	TypeSecret   = "secret"
)

// Descriptor is the serializable configuration of a Result. Values are not
// part of it; a described result is rebuilt unmaterialized.
type Descriptor struct {
	Type       string `json:"type" yaml:"type" mapstructure:"type" validate:"required"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Dir        string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
	FileType   string `json:"file_type,omitempty" yaml:"file_type,omitempty" mapstructure:"file_type" validate:"excluded_unless=Type tabular"`
	SecretName string `json:"secret_name,omitempty" yaml:"secret_name,omitempty" mapstructure:"secret_name" validate:"required_if=Type secret"`
}

// Deps carries the collaborators a Factory may need.
type Deps struct {
	// Secrets returns the provider for a secret name.
	Secrets  func(name string) (SecretProvider, bool)
	HomeDir  string
	Registry *tabular.Registry
	Logger   *logger.Logger
}

// Factory builds a Result from its descriptor.
type Factory func(d Descriptor, deps Deps) (Result, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{
		TypeConstant: func(Descriptor, Deps) (Result, error) { return NewConstant(nil), nil },
		TypeInline:   func(Descriptor, Deps) (Result, error) { return NewInline(), nil },
		TypeLocal: func(d Descriptor, deps Deps) (Result, error) {
			return NewLocal(deps.options(d)...)
		},
		TypeTabular: func(d Descriptor, deps Deps) (Result, error) {
			return NewTabular(append(deps.options(d), WithFileType(d.FileType))...)
		},
		TypeSecret: newSecretFromDescriptor,
	}
)

// RegisterFactory registers a Factory for a result type, replacing any
// existing one.
func RegisterFactory(typ string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[typ] = f
}

// RegisteredTypes returns the sorted list of registered result types.
func RegisteredTypes() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// FromDescriptor validates d and builds the Result it describes.
func FromDescriptor(d Descriptor, deps Deps) (Result, error) {
	if err := validation.Validate(d); err != nil {
		return nil, err
	}
	factoriesMu.RLock()
	f, ok := factories[d.Type]
	factoriesMu.RUnlock()
	if !ok {
		return nil, errors.InvalidInput("type", fmt.Sprintf("unknown result type %q", d.Type))
	}
	return f(d, deps)
}

// Describe returns the descriptor of a built-in Result.
func Describe(r Result) (Descriptor, error) {
	switch x := r.(type) {
	case *Constant:
		return Descriptor{Type: TypeConstant}, nil
	case *Inline:
		return Descriptor{Type: TypeInline}, nil
	case *Tabular:
		return Descriptor{Type: TypeTabular, Location: x.template, Dir: x.dir, FileType: x.fileType}, nil
	case *Local:
		return Descriptor{Type: TypeLocal, Location: x.template, Dir: x.dir}, nil
	case *Secret:
		d := Descriptor{Type: TypeSecret}
		if x.provider != nil {
			d.SecretName = x.provider.Name()
		}
		return d, nil
	}
	return Descriptor{}, errors.InvalidInput("result", fmt.Sprintf("cannot describe %T", r))
}

func (deps Deps) options(d Descriptor) []Option {
	opts := []Option{WithLocation(d.Location), WithDir(d.Dir)}
	if deps.HomeDir != "" {
		opts = append(opts, WithHomeDir(deps.HomeDir))
	}
	if deps.Registry != nil {
		opts = append(opts, WithRegistry(deps.Registry))
	}
	if deps.Logger != nil {
		opts = append(opts, WithLogger(deps.Logger))
	}
	return opts
}

func newSecretFromDescriptor(d Descriptor, deps Deps) (Result, error) {
	if deps.Secrets == nil {
		return nil, errors.SecretResolution(d.SecretName, errNoProvider)
	}
	p, ok := deps.Secrets(d.SecretName)
	if !ok {
		return nil, errors.SecretResolution(d.SecretName,
			fmt.Errorf("no provider registered for secret %q", d.SecretName))
	}
	var opts []Option
	if deps.Logger != nil {
		opts = append(opts, WithLogger(deps.Logger))
	}
	return NewSecret(p, opts...), nil
}
