package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"github.com/rejot-dev/montyhall/internal/report"
)

const (
	CurrentVersion    = "1.0"
	DefaultPath       = "montyhall.yaml"
	DefaultIterations = 3000
	DefaultWorkers    = 1
	DefaultConfidence = 0.95
)

type Config struct {
	Version    string  `yaml:"version" json:"version" jsonschema_description:"Configuration format version, currently 1.0"`
	Iterations int     `yaml:"iterations" json:"iterations" jsonschema_description:"Number of trials to simulate"`
	Seed       uint64  `yaml:"seed" json:"seed" jsonschema_description:"Generator seed, 0 picks a fresh random seed"`
	Workers    int     `yaml:"workers" json:"workers" jsonschema_description:"Number of goroutines sharing the trials"`
	Format     string  `yaml:"format" json:"format" jsonschema_description:"Report format: text, yaml, json, markdown, html or github"`
	Output     string  `yaml:"output,omitempty" json:"output,omitempty" jsonschema_description:"Report file, standard output when empty"`
	Confidence float64 `yaml:"confidence" json:"confidence" jsonschema_description:"Confidence level of the reported win rate intervals"`
}

// envOverrides are read from the environment after the file is loaded.
// Zero values mean "not set". Iterations is kept as text so a bad count
// falls back like the positional argument does.
type envOverrides struct {
	Iterations string  `env:"MONTYHALL_ITERATIONS"`
	Seed       uint64  `env:"MONTYHALL_SEED"`
	Workers    int     `env:"MONTYHALL_WORKERS"`
	Format     string  `env:"MONTYHALL_FORMAT"`
	Output     string  `env:"MONTYHALL_OUTPUT"`
	Confidence float64 `env:"MONTYHALL_CONFIDENCE"`
}

// Default returns a validated configuration without reading any file.
func Default() *Config {
	return &Config{
		Version:    CurrentVersion,
		Iterations: DefaultIterations,
		Workers:    DefaultWorkers,
		Format:     string(report.FormatText),
		Confidence: DefaultConfidence,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	config, err := ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func ParseFromBytes(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// ApplyEnv overrides fields with any MONTYHALL_* environment variables set.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Iterations != "" {
		n, err := strconv.Atoi(o.Iterations)
		if err != nil || n <= 0 {
			log.Warn("Invalid MONTYHALL_ITERATIONS, keeping configured value", "value", o.Iterations, "iterations", c.Iterations)
		} else {
			c.Iterations = n
		}
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Confidence != 0 {
		c.Confidence = o.Confidence
	}
	return nil
}

// Validate fills in defaults and rejects values the simulator cannot use.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported version: %s", c.Version)
	}

	// Set defaults
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Format == "" {
		c.Format = string(report.FormatText)
	}
	if c.Confidence == 0 {
		c.Confidence = DefaultConfidence
	}

	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be positive, got: %d", c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got: %d", c.Workers)
	}
	if _, err := report.ToFormat(c.Format); err != nil {
		return err
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0 exclusive, got: %f", c.Confidence)
	}

	return nil
}

func (c *Config) PrintAsYAML(w io.Writer) error {
	yamlData, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	_, err = fmt.Fprintln(w, string(yamlData))
	return err
}
