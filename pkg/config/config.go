package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for dataagent-engine.
// Configuration comes from a YAML file (config.yaml, overridable via
// CONFIG_PATH) plus environment variables; environment variables override
// YAML values for fields that support both. Datasource passwords may use
// ${VAR} placeholders expanded from the environment so secrets stay out of
// the file.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3443"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Datasources are the databases exposed for exploration.
	Datasources []DatasourceConfig `yaml:"datasources"`
}

// DatasourceConfig describes one named database connection.
type DatasourceConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // "postgres", "sqlserver"
	Description string `yaml:"description"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"` // supports ${VAR} expansion
	Database    string `yaml:"database"`
	Schema      string `yaml:"schema"`
	SSLMode     string `yaml:"ssl_mode"`
}

// Load reads configuration from the YAML file and the environment.
// A missing config file is not an error; the server then runs on
// environment values alone (typically with no datasources, useful in tests).
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validateDatasources(); err != nil {
		return nil, fmt.Errorf("invalid datasource configuration: %w", err)
	}

	for i := range cfg.Datasources {
		cfg.Datasources[i].Password = os.ExpandEnv(cfg.Datasources[i].Password)
	}

	return cfg, nil
}

// validateDatasources checks required fields and name uniqueness.
func (c *Config) validateDatasources() error {
	seen := make(map[string]bool, len(c.Datasources))
	for _, ds := range c.Datasources {
		if ds.Name == "" {
			return fmt.Errorf("datasource entry without a name")
		}
		if seen[ds.Name] {
			return fmt.Errorf("duplicate datasource name %q", ds.Name)
		}
		seen[ds.Name] = true

		if ds.Type == "" {
			return fmt.Errorf("datasource %q has no type", ds.Name)
		}
		if ds.Host == "" {
			return fmt.Errorf("datasource %q has no host", ds.Name)
		}
		if ds.Database == "" {
			return fmt.Errorf("datasource %q has no database", ds.Name)
		}
	}
	return nil
}
