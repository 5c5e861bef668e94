// Package config loads driver configuration from defaults, an optional YAML
// config file, and ARGCHECK_* environment variables, in increasing order of
// precedence. Command-line flags override all of it in main.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = ".argcheck.yaml"

// Config is the complete driver configuration.
type Config struct {
	LogFile      string   `mapstructure:"log_file"`
	LogLevel     string   `mapstructure:"log_level"`
	Format       string   `mapstructure:"format"` // text or json
	Filter       string   `mapstructure:"filter"` // package path prefix
	Rules        []string `mapstructure:"rules"`  // rule ID allowlist
	StrictGroups bool     `mapstructure:"strict_groups"`
	Unexported   bool     `mapstructure:"unexported"`
	Port         int      `mapstructure:"port"`
}

// Load reads configuration from file (optional; "" tries DefaultFile) and the
// environment. A missing default file is not an error; a missing explicit
// file is.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_file", "logs/argcheck.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("format", "text")
	v.SetDefault("filter", "")
	v.SetDefault("rules", []string{})
	v.SetDefault("strict_groups", false)
	v.SetDefault("unexported", false)
	v.SetDefault("port", 8080)

	v.SetEnvPrefix("ARGCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if explicit {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
		// The default file is optional: only a present-but-broken file is an
		// error.
		if _, statErr := os.Stat(file); statErr == nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}
