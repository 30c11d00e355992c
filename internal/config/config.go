package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AnalysisConfig struct {
	// Workers is the number of concurrent frame comparisons. 1 keeps the
	// sequential reference behaviour.
	Workers int `yaml:"workers"`

	// VisibilityFloor marks a joint unresolvable below this detector
	// confidence; its angle degrades to zero. 0 trusts every landmark.
	VisibilityFloor float64 `yaml:"visibility_floor"`
}

type ReportConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{Workers: 1, VisibilityFloor: 0.5},
		Report:   ReportConfig{Dir: "reports", Formats: []string{"json", "html"}},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix KRAVMAGA_ and underscore-separated
// paths:
//
//	KRAVMAGA_ANALYSIS_WORKERS, KRAVMAGA_ANALYSIS_VISIBILITY_FLOOR,
//	KRAVMAGA_REPORT_DIR, KRAVMAGA_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KRAVMAGA_ANALYSIS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}
	if v := os.Getenv("KRAVMAGA_ANALYSIS_VISIBILITY_FLOOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.VisibilityFloor = f
		}
	}
	if v := os.Getenv("KRAVMAGA_REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("KRAVMAGA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1")
	}
	if c.Analysis.VisibilityFloor < 0 || c.Analysis.VisibilityFloor > 1 {
		return fmt.Errorf("analysis.visibility_floor must be within [0,1]")
	}
	if c.Report.Dir == "" {
		return fmt.Errorf("report.dir is required")
	}
	for _, f := range c.Report.Formats {
		if f != "json" && f != "html" {
			return fmt.Errorf("report.formats: unknown format %q", f)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}
