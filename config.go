package svcgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"

	"github.com/broady/svcgen/swift"
)

// DefaultNameSuffix is appended to a service name to form its generated class name.
const DefaultNameSuffix = "Gen"

var (
	validate      = validator.New()
	paramsDecoder = schema.NewDecoder()
)

func init() {
	paramsDecoder.SetAliasTag("param")
}

// Config holds the configuration for code generation.
type Config struct {
	// ProjectName is written into the header of every generated file.
	ProjectName string `yaml:"project" param:"project_name" validate:"max=128"`

	// ServiceOutputDir is the directory generated services are written to.
	ServiceOutputDir string `yaml:"output_service" param:"output_service" validate:"required"`

	// ModelOutputDir is the directory the utility files are written to.
	ModelOutputDir string `yaml:"output_model" param:"output_model" validate:"required"`

	// NameSuffix is appended to service names. Default: "Gen".
	NameSuffix string `yaml:"name_suffix" param:"name_suffix" validate:"omitempty,alphanum"`

	// StrictVerb makes a method without an HTTP verb annotation an error
	// instead of defaulting to GET with a warning.
	StrictVerb bool `yaml:"strict_verb" param:"strict_verb"`

	// IndentSize is the number of spaces per indentation level. Default: 4.
	IndentSize int `yaml:"indent_size" param:"indent_size" validate:"min=1,max=8"`

	// Overwrite controls whether existing files are replaced. Default: true.
	Overwrite bool `yaml:"overwrite" param:"overwrite"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		ServiceOutputDir: ".",
		ModelOutputDir:   ".",
		NameSuffix:       DefaultNameSuffix,
		IndentSize:       swift.DefaultIndentSize,
		Overwrite:        true,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// Keys missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) suffix() string {
	if c.NameSuffix == "" {
		return DefaultNameSuffix
	}
	return c.NameSuffix
}

// ApplyParams overrides config values with execution parameters, keyed
// by their param names (e.g. "output_service", "strict_verb").
// Unknown keys are an error.
func ApplyParams(cfg *Config, params map[string][]string) error {
	if len(params) == 0 {
		return nil
	}
	if err := paramsDecoder.Decode(cfg, params); err != nil {
		return fmt.Errorf("apply params: %w", err)
	}
	return nil
}

// ParseParams splits "key=value" pairs into a parameter map.
// A pair without "=" sets the key to "true".
func ParseParams(pairs []string) (map[string][]string, error) {
	params := make(map[string][]string, len(pairs))
	for _, p := range pairs {
		key, value, found := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid param %q: empty key", p)
		}
		if !found {
			value = "true"
		}
		params[key] = append(params[key], value)
	}
	return params, nil
}
