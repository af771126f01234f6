package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths         []string      `toml:"paths"`
	Checks        Checks        `toml:"checks"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Checks struct {
	TestFilenamePattern     string `toml:"test_filename_pattern"`
	TestFunctionPattern     string `toml:"test_function_pattern"`
	FixtureFilenamePattern  string `toml:"fixture_filename_pattern"`
	FixtureDecoratorPattern string `toml:"fixture_decorator_pattern"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	SARIF string `toml:"sarif"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Checks.TestFilenamePattern == "" {
		cfg.Checks.TestFilenamePattern = `test_.*\.py`
	}
	if cfg.Checks.TestFunctionPattern == "" {
		cfg.Checks.TestFunctionPattern = `test_.*`
	}
	if cfg.Checks.FixtureFilenamePattern == "" {
		cfg.Checks.FixtureFilenamePattern = `conftest\.py`
	}
	if cfg.Checks.FixtureDecoratorPattern == "" {
		cfg.Checks.FixtureDecoratorPattern = `(^|\.)fixture$`
	}
}
