// Package config loads regionorm.toml.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"

	"regionorm/internal/normalize"
)

// FileName is the project configuration file looked up by Find.
const FileName = "regionorm.toml"

// Config is the decoded regionorm.toml.
type Config struct {
	Normalize NormalizeConfig `toml:"normalize" yaml:"normalize" json:"normalize"`
	Run       RunConfig       `toml:"run" yaml:"run" json:"run"`

	// Path is the file the config came from, "" for built-in defaults.
	Path string `toml:"-" yaml:"-" json:"-"`
}

// NormalizeConfig is the [normalize] table.
type NormalizeConfig struct {
	HeaderPrefix    string `toml:"header_prefix" yaml:"header_prefix" json:"header_prefix"`
	SignaturePrefix string `toml:"signature_prefix" yaml:"signature_prefix" json:"signature_prefix"`
	WarnUnresolved  bool   `toml:"warn_unresolved" yaml:"warn_unresolved" json:"warn_unresolved"`
}

// RunConfig is the [run] table.
type RunConfig struct {
	Jobs           int    `toml:"jobs" yaml:"jobs" json:"jobs"` // 0 = GOMAXPROCS
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics" json:"max_diagnostics"`
	Cache          bool   `toml:"cache" yaml:"cache" json:"cache"`
	MinVersion     string `toml:"min_version" yaml:"min_version,omitempty" json:"min_version,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Normalize: NormalizeConfig{
			HeaderPrefix:    normalize.DefaultHeaderPrefix,
			SignaturePrefix: normalize.DefaultSignaturePrefix,
			WarnUnresolved:  true,
		},
		Run: RunConfig{
			MaxDiagnostics: 100,
			Cache:          true,
		},
	}
}

// Find walks up from startDir looking for regionorm.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest regionorm.toml above startDir, or returns
// Default when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the values against each other and against the running
// tool version (vMAJOR.MINOR.PATCH).
func (c Config) Validate(toolVersion string) error {
	var errs []error
	hp, sp := c.Normalize.HeaderPrefix, c.Normalize.SignaturePrefix
	if err := checkPrefix("header_prefix", hp); err != nil {
		errs = append(errs, err)
	}
	if err := checkPrefix("signature_prefix", sp); err != nil {
		errs = append(errs, err)
	}
	if hp != "" && sp != "" && (strings.HasPrefix(hp, sp) || strings.HasPrefix(sp, hp)) {
		errs = append(errs, fmt.Errorf("[normalize] header_prefix %q and signature_prefix %q overlap", hp, sp))
	}
	if c.Run.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[run] jobs must be >= 0, got %d", c.Run.Jobs))
	}
	if c.Run.MaxDiagnostics < 0 || c.Run.MaxDiagnostics > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("[run] max_diagnostics must be in 0..%d, got %d", math.MaxUint16, c.Run.MaxDiagnostics))
	}
	if v := c.Run.MinVersion; v != "" {
		switch {
		case !semver.IsValid(v):
			errs = append(errs, fmt.Errorf("[run] min_version %q is not a semantic version", v))
		case semver.IsValid(toolVersion) && semver.Compare(v, toolVersion) > 0:
			errs = append(errs, fmt.Errorf("[run] min_version %s is newer than regionorm %s", v, toolVersion))
		}
	}
	if err := errors.Join(errs...); err != nil {
		if c.Path != "" {
			return fmt.Errorf("%s: %w", c.Path, err)
		}
		return err
	}
	return nil
}

// NormalizeOptions converts the [normalize] table.
func (c Config) NormalizeOptions() normalize.Options {
	return normalize.Options{
		HeaderPrefix:    c.Normalize.HeaderPrefix,
		SignaturePrefix: c.Normalize.SignaturePrefix,
	}
}

// checkPrefix requires an identifier; generated names append a decimal index.
func checkPrefix(key, p string) error {
	if p == "" {
		return fmt.Errorf("[normalize] %s must not be empty", key)
	}
	for i, r := range p {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("[normalize] %s %q is not an identifier", key, p)
		}
	}
	return nil
}
