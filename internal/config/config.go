package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

// Duration lets yaml configs spell durations as "2s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config carries every knob the harvest run needs. It is built once at
// startup and passed into the fetcher, query builder and pipeline as
// immutable state; nothing reads it as a global.
type Config struct {
	Endpoint     string   `yaml:"endpoint"`
	DBPath       string   `yaml:"db_path"`
	BatchSize    int      `yaml:"batch_size"`
	MaxRetries   int      `yaml:"max_retries"`
	BaseDelay    Duration `yaml:"base_delay"`
	Timeout      Duration `yaml:"timeout"`
	Extended     bool     `yaml:"extended"`
	ExpectedHost string   `yaml:"expected_host"`
}

// Default returns the configuration matching the NERC vocabulary
// server deployment.
func Default() Config {
	return Config{
		Endpoint:     "http://vocab.nerc.ac.uk/sparql/",
		DBPath:       "harvest.db",
		BatchSize:    1000,
		MaxRetries:   3,
		BaseDelay:    Duration(time.Second),
		Timeout:      Duration(60 * time.Second),
		ExpectedHost: "vocab.nerc.ac.uk",
	}
}

// Load returns the defaults overlaid with the yaml file at path. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// Fields returns the attribute set this run harvests.
func (c Config) Fields() []domain.Field {
	if c.Extended {
		return domain.ExtendedFields()
	}
	return domain.CoreFields()
}
