package driver

import (
	"regionorm/internal/config"
	"regionorm/internal/normalize"
)

// Options configure one driver run.
type Options struct {
	Normalize      normalize.Options
	WarnUnresolved bool // NRM4001 for every unresolved output position
	Explain        bool // NRM4002 notes describing generated regions
	MaxDiagnostics int
	Jobs           int // 0 = GOMAXPROCS
	Cache          *DiskCache
	Progress       ProgressSink
}

// OptionsFromConfig maps a loaded regionorm.toml onto driver options. The
// cache is left nil; callers open it when [run].cache is set.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Normalize:      cfg.NormalizeOptions(),
		WarnUnresolved: cfg.Normalize.WarnUnresolved,
		MaxDiagnostics: cfg.Run.MaxDiagnostics,
		Jobs:           cfg.Run.Jobs,
	}
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
