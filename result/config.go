package result

import (
	"github.com/kbukum/resultkit/config"
	"github.com/kbukum/resultkit/logger"
)

// Logger component names of the file-backed and secret results.
const (
	componentLocal   = "result.local"
	componentTabular = "result.tabular"
	componentSecret  = "result.secret"
)

// Components lists the logger components result constructors log under.
func Components() []string {
	return []string{componentLocal, componentTabular, componentSecret}
}

// Setup installs the logger described by cfg as the process logger and
// registers it for every result component, so constructors that are not
// given WithLogger log through it.
func Setup(cfg *config.Config) *logger.Logger {
	c := *cfg
	c.ApplyDefaults()
	return logger.Init(&c.Logging, c.Name, Components()...)
}

// OptionsFromConfig returns the constructor options derived from cfg: home
// and results directories, the default tabular file type and a logger built
// from the logging section.
func OptionsFromConfig(cfg *config.Config) []Option {
	c := *cfg
	c.ApplyDefaults()
	logCfg := c.Logging
	return []Option{
		WithHomeDir(c.HomeDir),
		WithDir(c.Results.Dir),
		WithFileType(c.Results.FileType),
		WithLogger(logger.New(&logCfg, c.Name)),
	}
}
