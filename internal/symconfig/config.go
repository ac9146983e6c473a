// Package symconfig holds the tunable knobs every solving entry point in
// this repository reads: how deep to unroll FSeq/recursive generation,
// which backend to run against, and how long to let a query run before
// giving up. Config loads from an optional YAML file via
// github.com/goccy/go-yaml (carried from the teacher's own dependency
// list) and is otherwise overridden by functional options on the
// pkg/sym facade.
package symconfig

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// BackendKind selects which internal/solver.Backend implementation a
// Function runs its Find/Assert/Maximize/Minimize calls against.
type BackendKind string

const (
	Reference BackendKind = "reference"
	BDD       BackendKind = "bdd"
)

// Config is the full set of knobs a solving call consults.
type Config struct {
	// Depth bounds how many cells internal/symeval/gen.Generate unrolls
	// an FSeq into.
	Depth int `yaml:"depth"`
	// CheckSmallerDepths, when true, gives each generated FSeq cell its
	// own presence guard, so an FSeq input may take any length from 0 up
	// to Depth; when false every cell is present and only length Depth
	// is searched.
	CheckSmallerDepths bool `yaml:"check_smaller_depths"`
	// Simplify is stored and loaded but not read by any component:
	// internal/symexpr's smart constructors always apply their peephole
	// simplifications, whatever its value.
	Simplify bool `yaml:"simplify"`
	// Backend selects which internal/solver.Backend a query runs on.
	Backend BackendKind `yaml:"backend"`
	// Timeout bounds how long a single Solve/Maximize/Minimize call may
	// run; zero means unbounded.
	Timeout time.Duration `yaml:"timeout"`
	// MaxUnrollingDepth is the value a Function's Compile records. No
	// component reads it: evaluation and solving do not consult it.
	MaxUnrollingDepth int `yaml:"max_unrolling_depth"`
}

// Default returns the library's documented default configuration.
func Default() Config {
	return Config{
		Depth:              5,
		CheckSmallerDepths: true,
		Simplify:           true,
		Backend:            Reference,
		Timeout:            0,
		MaxUnrollingDepth:  5,
	}
}

// Option mutates a Config in place; used by pkg/sym's functional-options
// facade (WithDepth, WithTimeout, ...).
type Option func(*Config)

// Apply folds every opt into cfg in order and returns it.
func (c Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithDepth(depth int) Option { return func(c *Config) { c.Depth = depth } }

func WithCheckSmallerDepths(check bool) Option {
	return func(c *Config) { c.CheckSmallerDepths = check }
}

func WithSimplify(simplify bool) Option { return func(c *Config) { c.Simplify = simplify } }

func WithBackend(kind BackendKind) Option { return func(c *Config) { c.Backend = kind } }

func WithTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

func WithMaxUnrollingDepth(depth int) Option {
	return func(c *Config) { c.MaxUnrollingDepth = depth }
}

// Load reads a YAML config file at path, applying its fields on top of
// Default(). A missing file is not an error — Load returns Default()
// unchanged, so a symex.yaml is always optional.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
