// Package config loads respan options and named patterns from configuration
// files and the environment.
//
// Keys match the mapstructure tags of respan.Options. Environment variables
// use the RESPAN_ prefix:
//
//	# respan.yaml
//	case_sensitive: false
//	longest_match: true
//	backend: re2
//	patterns:
//	  date: '(\d{4})-(\d{2})-(\d{2})'
//
//	RESPAN_LONGEST_MATCH=false overrides longest_match.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"github.com/coregx/respan"
	"github.com/coregx/respan/engine"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "RESPAN"

// PatternsKey holds the named pattern table.
const PatternsKey = "patterns"

// SetDefaults registers respan.DefaultOptions on v, which also makes every
// option key visible to AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	d := respan.DefaultOptions()
	v.SetDefault("case_sensitive", d.CaseSensitive)
	v.SetDefault("posix_syntax", d.POSIXSyntax)
	v.SetDefault("longest_match", d.LongestMatch)
	v.SetDefault("word_boundary", d.WordBoundary)
	v.SetDefault("perl_classes", d.PerlClasses)
	v.SetDefault("literal", d.Literal)
	v.SetDefault("dot_nl", d.DotNL)
	v.SetDefault("one_line", d.OneLine)
	v.SetDefault("never_capture", d.NeverCapture)
	v.SetDefault("backend", string(d.Backend))
	v.SetDefault("prefilter", d.Prefilter)
}

// Load decodes respan.Options from v, starting from respan.DefaultOptions.
func Load(v *viper.Viper) (respan.Options, error) {
	opts := respan.DefaultOptions()
	if err := v.Unmarshal(&opts); err != nil {
		return respan.Options{}, fmt.Errorf("config: decode options: %w", err)
	}
	if opts.Backend == "" {
		opts.Backend = respan.BackendStd
	}
	if !slices.Contains(engine.Backends(), opts.Backend) {
		return respan.Options{}, fmt.Errorf("config: %w: %q", respan.ErrUnknownBackend, opts.Backend)
	}
	return opts, nil
}

// New returns a viper instance reading path (when non-empty) and RESPAN_*
// environment variables, with defaults registered.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return v, nil
}

// LoadFile reads options from the file at path and the environment.
func LoadFile(path string) (respan.Options, error) {
	v, err := New(path)
	if err != nil {
		return respan.Options{}, err
	}
	return Load(v)
}

// Patterns compiles the named pattern table under PatternsKey with the
// options decoded from v. Patterns that fail to compile, or compile with a
// syntax error, are reported together; the returned map then holds only the
// valid ones.
func Patterns(v *viper.Viper) (map[string]*respan.Pattern, error) {
	opts, err := Load(v)
	if err != nil {
		return nil, err
	}

	src := v.GetStringMapString(PatternsKey)
	out := make(map[string]*respan.Pattern, len(src))
	var errs []error
	for name, expr := range src {
		p, err := respan.CompileWithOptions(expr, opts)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("pattern %q: %w", name, err))
		case !p.OK():
			errs = append(errs, fmt.Errorf("pattern %q: %w: %w", name, respan.ErrInvalidPattern, p.Err()))
		default:
			out[name] = p
		}
	}
	return out, errors.Join(errs...)
}
