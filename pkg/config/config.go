package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-latticegraph/pkg/conduction"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
	"github.com/dd0wney/cluso-latticegraph/pkg/validation"
)

// Config is one run of the extractor as described by a YAML run file
type Config struct {
	Structure   string           `yaml:"structure"`
	Axis        int              `yaml:"axis" validate:"oneof=0 1 2"`
	Cutoff      float64          `yaml:"cutoff" validate:"gt=0"`
	Translation lattice.Vec3     `yaml:"translation"`
	Thresholds  ThresholdsConfig `yaml:"thresholds"`
	EdgeWeight  int              `yaml:"edge_weight" validate:"gte=1"`
	Analysis    AnalysisConfig   `yaml:"analysis"`
	Output      OutputConfig     `yaml:"output"`
	Logging     LoggingConfig    `yaml:"logging"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Neo4j       Neo4jConfig      `yaml:"neo4j"`
	S3          S3Config         `yaml:"s3"`
}

// ThresholdsConfig holds the geometric heuristics of boundary handling
type ThresholdsConfig struct {
	Wrap          float64 `yaml:"wrap" validate:"gt=0,lte=1"`
	StartFraction float64 `yaml:"start_fraction" validate:"gt=0,lte=1"`
}

// AnalysisConfig toggles the checks run after relabeling
type AnalysisConfig struct {
	Cycles bool `yaml:"cycles"`
	Paths  bool `yaml:"paths"`
}

// OutputConfig describes the exported network file
type OutputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format" validate:"oneof=json yaml"`
	Compress bool   `yaml:"compress"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// MetricsConfig controls the Prometheus textfile dump
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Neo4jConfig describes the optional graph database sink
type Neo4jConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections" validate:"gte=0"`
}

// S3Config describes the optional upload of the exported file
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

const (
	defaultFormat       = "json"
	defaultLoggingLevel = "info"
)

// Default returns a configuration with every default applied. Cutoff has no
// default and must be set.
func Default() Config {
	return Config{
		Axis: 0,
		Thresholds: ThresholdsConfig{
			Wrap:          conduction.DefaultWrapThreshold,
			StartFraction: conduction.DefaultStartFraction,
		},
		EdgeWeight: conduction.DefaultEdgeWeight,
		Analysis:   AnalysisConfig{Cycles: true, Paths: true},
		Output:     OutputConfig{Format: defaultFormat},
		Logging:    LoggingConfig{Level: defaultLoggingLevel},
	}
}

// Load reads a YAML run file over the defaults and then applies environment
// overrides. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides secrets and deployment settings from the environment
func (c *Config) applyEnv() error {
	c.Logging.Level = strings.ToLower(valueOrDefault("LOG_LEVEL", c.Logging.Level))
	c.Neo4j.URI = valueOrDefault("NEO4J_URI", c.Neo4j.URI)
	c.Neo4j.Database = valueOrDefault("NEO4J_DATABASE", c.Neo4j.Database)
	c.Neo4j.Username = valueOrDefault("NEO4J_USERNAME", c.Neo4j.Username)
	c.Neo4j.Password = valueOrDefault("NEO4J_PASSWORD", c.Neo4j.Password)
	c.S3.Region = valueOrDefault("AWS_REGION", c.S3.Region)
	c.S3.Endpoint = valueOrDefault("AWS_ENDPOINT_URL_S3", c.S3.Endpoint)

	if v := os.Getenv("NEO4J_MAX_CONNECTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEO4J_MAX_CONNECTIONS value %q: %w", v, err)
		}
		c.Neo4j.MaxConnections = n
	}
	return nil
}

// Validate checks field constraints and the rules between sections
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cv := validation.NewConfigValidator("config").
		When(c.Output.Compress, func(cv *validation.ConfigValidator) {
			cv.Required("output.path", c.Output.Path)
		}).
		When(c.S3.Bucket != "", func(cv *validation.ConfigValidator) {
			cv.Custom("s3.bucket", func() error {
				if c.Output.Path == "" {
					return fmt.Errorf("upload needs output.path")
				}
				return nil
			})
		}).
		When(c.Neo4j.URI != "", func(cv *validation.ConfigValidator) {
			cv.Required("neo4j.username", c.Neo4j.Username)
		})
	if err := cv.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options converts the run settings into pipeline options
func (c *Config) Options() conduction.Options {
	return conduction.Options{
		Axis:          c.Axis,
		Cutoff:        c.Cutoff,
		Translation:   c.Translation,
		WrapThreshold: c.Thresholds.Wrap,
		StartFraction: c.Thresholds.StartFraction,
		EdgeWeight:    c.EdgeWeight,
		CheckCycles:   c.Analysis.Cycles,
		CheckPaths:    c.Analysis.Paths,
	}
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
