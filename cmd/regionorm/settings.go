package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"regionorm/internal/config"
	"regionorm/internal/diagfmt"
	"regionorm/internal/driver"
	"regionorm/internal/version"
)

// settings is what every normalizing command needs: the validated config,
// driver options derived from it and the global output flags.
type settings struct {
	cfg     config.Config
	opts    driver.Options
	quiet   bool
	timings bool
	pretty  diagfmt.PrettyOpts
}

// loadSettings reads regionorm.toml (--config or discovered from startDir),
// applies global flag overrides and validates the result.
func loadSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(startDir)
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Run.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(version.Semver()); err != nil {
		return nil, err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	useColor, err := colorEnabled(colorFlag, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:     cfg,
		opts:    driver.OptionsFromConfig(cfg),
		quiet:   quiet,
		timings: timings,
		pretty: diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			ShowNotes: true,
		},
	}, nil
}

// openCache opens the disk cache when [run].cache allows it. A cache that
// cannot be opened is reported and skipped.
func (s *settings) openCache(cmd *cobra.Command, disabled bool) {
	if disabled || !s.cfg.Run.Cache {
		return
	}
	cache, err := driver.OpenDiskCache("regionorm")
	if err != nil {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
		}
		return
	}
	s.opts.Cache = cache
}
