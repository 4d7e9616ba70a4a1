package result

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/logger"
)

// SecretProvider resolves secrets that are not present in the execution
// context.
type SecretProvider interface {
	// Name returns the secret the provider was declared for.
	Name() string
	// Resolve returns the value of the named secret.
	Resolve(ctx context.Context, name string) (any, error)
}

var (
	errNoProvider = stderrors.New("no secret provider configured")
	errNoValue    = stderrors.New("provider returned no value")
)

type secretsKey struct{}

// WithSecrets returns a context carrying secrets for the current execution.
// Secrets already on ctx are kept unless overridden.
func WithSecrets(ctx context.Context, secrets map[string]any) context.Context {
	merged := make(map[string]any, len(secrets))
	for k, v := range SecretsFromContext(ctx) {
		merged[k] = v
	}
	for k, v := range secrets {
		merged[k] = v
	}
	return context.WithValue(ctx, secretsKey{}, merged)
}

// SecretsFromContext returns the secrets attached to ctx, or nil.
func SecretsFromContext(ctx context.Context) map[string]any {
	m, _ := ctx.Value(secretsKey{}).(map[string]any)
	return m
}

// Secret is a Result whose location is the name of a secret. Its value is
// taken from the execution context when present, otherwise from the provider.
type Secret struct {
	state
	provider SecretProvider
	log      *logger.Logger
}

// NewSecret returns a Secret whose location is the provider's secret name.
func NewSecret(p SecretProvider, opts ...Option) *Secret {
	o := newOptions(opts)
	s := &Secret{provider: p, log: componentLogger(o.log, componentSecret)}
	if p != nil {
		s.location = p.Name()
	}
	if o.hasValue {
		s.value, s.hasValue = o.value, true
	}
	return s
}

// Provider returns the configured provider.
func (s *Secret) Provider() SecretProvider { return s.provider }

// Read resolves the secret named by location.
func (s *Secret) Read(ctx context.Context, location string) (Result, error) {
	var (
		value any
		ok    bool
	)
	if secrets := SecretsFromContext(ctx); secrets != nil {
		value, ok = secrets[location]
	}
	if !ok {
		if s.provider == nil {
			return nil, errors.SecretResolution(location, errNoProvider)
		}
		v, err := s.provider.Resolve(ctx, location)
		if err != nil {
			s.log.Debug("secret resolution failed", logger.Fields(logger.FieldSecret, location, logger.FieldError, err.Error()))
			return nil, errors.SecretResolution(location, err)
		}
		if v == nil {
			return nil, errors.SecretResolution(location, errNoValue)
		}
		value = v
	}
	n := *s
	n.state = materialized(location, value)
	return &n, nil
}

// Write always fails: secrets are read-only.
func (s *Secret) Write(context.Context, any, map[string]any) (Result, error) {
	return nil, errors.ImmutableWrite(TypeSecret)
}

// Exists is always true; secrets are resolved on demand.
func (s *Secret) Exists(context.Context, string) (bool, error) {
	return true, nil
}

// ResolveFunc looks up a secret by name.
type ResolveFunc func(ctx context.Context, name string) (any, error)

type funcProvider struct {
	name string
	fn   ResolveFunc
}

// ProviderFunc adapts fn into a SecretProvider declared for name.
func ProviderFunc(name string, fn ResolveFunc) SecretProvider {
	return funcProvider{name: name, fn: fn}
}

func (p funcProvider) Name() string { return p.name }

func (p funcProvider) Resolve(ctx context.Context, name string) (any, error) {
	return p.fn(ctx, name)
}

// EnvProvider resolves secrets from environment variables named
// Prefix + secret name.
type EnvProvider struct {
	SecretName string
	Prefix     string
}

// Name returns the declared secret name.
func (p EnvProvider) Name() string { return p.SecretName }

// Resolve returns the environment variable for name.
func (p EnvProvider) Resolve(_ context.Context, name string) (any, error) {
	key := p.Prefix + name
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil, fmt.Errorf("environment variable %s is not set", key)
	}
	return v, nil
}
