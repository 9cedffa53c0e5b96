package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the LabKeeper CLI.
type Config struct {
	DatabasePath string `env:"DATABASE_PATH"`
	LogLevel     string `env:"LOG_LEVEL"`
	// ShowDefaultCredentials prints the seeded admin login on the login
	// screen.
	ShowDefaultCredentials bool          `env:"SHOW_DEFAULT_CREDENTIALS"`
	OperationTimeout       time.Duration `env:"OPERATION_TIMEOUT"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "laboratorio.db"
	c.LogLevel = "info"
	c.ShowDefaultCredentials = true
	c.OperationTimeout = 5 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and os.Args, in that order.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
