package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dbgapdd/internal/logging"
	"github.com/vvka-141/dbgapdd/pkg/dbgap"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables consulted by Resolve and ApplyEnv.
const (
	EnvConfig       = "DBGAPDD_CONFIG"
	EnvVerbosity    = "DBGAPDD_VERBOSITY"
	EnvMissingValue = "DBGAPDD_MISSING_VALUE"
)

// ProjectConfig controls the JSON schema shape and the conversion defaults.
type ProjectConfig struct {
	RequiredFields []string `yaml:"required_fields"`
	OptionalFields []string `yaml:"optional_fields"`
	OutputFields   []string `yaml:"output_fields"`
	MissingValue   *string  `yaml:"missing_value"` // nil writes JSON null
	Verbosity      *int     `yaml:"verbosity"`
	Report         bool     `yaml:"report"`
}

const ConfigFileName = "dbgapdd.yaml"

// Default returns the built-in configuration.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *ProjectConfig) applyDefaults() {
	if c.RequiredFields == nil {
		c.RequiredFields = append([]string(nil), dbgap.RequiredJSONFields...)
	}
	if c.OptionalFields == nil {
		c.OptionalFields = append([]string(nil), dbgap.OptionalJSONFields...)
	}
	if c.OutputFields == nil {
		c.OutputFields = append(append([]string(nil), c.RequiredFields...), c.OptionalFields...)
	}
	if c.Verbosity == nil {
		v := logging.DefaultVerbosity
		c.Verbosity = &v
	}
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates a config file. Unset keys take their defaults;
// unknown keys are rejected.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", dbgap.ErrInvalidConfig, path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve finds the configuration to use: explicitPath when set, else the
// file named by DBGAPDD_CONFIG, else ./dbgapdd.yaml, else the defaults.
// Only the last candidate may be absent. Environment overrides are applied
// to the result.
func Resolve(explicitPath string) (*ProjectConfig, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	var cfg *ProjectConfig
	var err error
	if path != "" {
		cfg, err = LoadFile(path)
		if errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s does not exist", dbgap.ErrInvalidConfig, path)
		}
	} else {
		cfg, err = Load(".")
		if errors.Is(err, ErrConfigNotFound) {
			cfg, err = Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides verbosity and the missing value placeholder from the
// environment.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if raw, ok := lookup(EnvVerbosity); ok && raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", dbgap.ErrInvalidConfig, EnvVerbosity, raw)
		}
		c.Verbosity = &v
	}
	if raw, ok := lookup(EnvMissingValue); ok {
		c.MissingValue = &raw
	}
	return c.Validate()
}

// Validate checks field lists and verbosity.
func (c *ProjectConfig) Validate() error {
	if len(c.RequiredFields) == 0 {
		return fmt.Errorf("%w: required_fields must not be empty", dbgap.ErrInvalidConfig)
	}
	if len(c.OutputFields) == 0 {
		return fmt.Errorf("%w: output_fields must not be empty", dbgap.ErrInvalidConfig)
	}
	for key, fields := range map[string][]string{
		"required_fields": c.RequiredFields,
		"optional_fields": c.OptionalFields,
		"output_fields":   c.OutputFields,
	} {
		for i, f := range fields {
			if f == "" {
				return fmt.Errorf("%w: %s[%d] is empty", dbgap.ErrInvalidConfig, key, i)
			}
		}
	}
	if c.Verbosity != nil && (*c.Verbosity < 0 || *c.Verbosity > logging.MaxVerbosity) {
		return fmt.Errorf("%w: verbosity must be between 0 and %d, got %d", dbgap.ErrInvalidConfig, logging.MaxVerbosity, *c.Verbosity)
	}
	return nil
}

// VerbosityLevel returns the configured verbosity.
func (c *ProjectConfig) VerbosityLevel() int {
	if c.Verbosity == nil {
		return logging.DefaultVerbosity
	}
	return *c.Verbosity
}
