package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatGo   = "go"
)

// Config represents the complete configuration for jsonshape
type Config struct {
	Inspection InspectionConfig `yaml:"inspection"`
	Numbers    NumbersConfig    `yaml:"numbers"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// InspectionConfig controls how the schema tree is built
type InspectionConfig struct {
	// MaxDepth bounds object/array nesting. Zero means unbounded.
	MaxDepth int `yaml:"max_depth"`
	// IncludeSamples keeps the example value on every leaf field.
	IncludeSamples bool `yaml:"include_samples"`
	// KeepElementNodes attaches the complex field of every object element of an
	// array to the parent, not only the first one.
	KeepElementNodes bool `yaml:"keep_element_nodes"`
}

// NumbersConfig controls numeric subtype detection
type NumbersConfig struct {
	BigIntegerForInts   bool `yaml:"big_integer_for_ints"`
	BigDecimalForFloats bool `yaml:"big_decimal_for_floats"`
}

// OutputConfig controls how the schema is written
type OutputConfig struct {
	Format   string `yaml:"format"`
	Package  string `yaml:"package"`
	RootName string `yaml:"root_name"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Inspection: InspectionConfig{
			MaxDepth:         0,
			IncludeSamples:   true,
			KeepElementNodes: true,
		},
		Numbers: NumbersConfig{
			BigIntegerForInts:   false,
			BigDecimalForFloats: false,
		},
		Output: OutputConfig{
			Format:   FormatTree,
			Package:  "main",
			RootName: "Root",
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonshape.yml", ".jsonshape.yaml", "jsonshape.yml", "jsonshape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option values that YAML decoding cannot
func (c *Config) Validate() error {
	if c.Inspection.MaxDepth < 0 {
		return fmt.Errorf("inspection.max_depth must not be negative, got %d", c.Inspection.MaxDepth)
	}
	switch c.Output.Format {
	case FormatTree, FormatJSON, FormatYAML, FormatGo:
	default:
		return fmt.Errorf("unknown output format '%s' (want tree, json, yaml or go)", c.Output.Format)
	}
	return nil
}

// Overrides carries values given on the command line. Pointer fields are nil
// when the flag was not set.
type Overrides struct {
	Format         string
	Package        string
	RootName       string
	MaxDepth       *int
	IncludeSamples *bool
	Debug          bool
}

// Apply merges CLI overrides into the config. Non-empty values win.
func (c *Config) Apply(o Overrides) {
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.Package != "" {
		c.Output.Package = o.Package
	}
	if o.RootName != "" {
		c.Output.RootName = o.RootName
	}
	if o.MaxDepth != nil {
		c.Inspection.MaxDepth = *o.MaxDepth
	}
	if o.IncludeSamples != nil {
		c.Inspection.IncludeSamples = *o.IncludeSamples
	}
	if o.Debug {
		c.Dev.Debug = true
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence. An empty
// configPath falls back to FindConfigFile, then to defaults.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.Apply(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
