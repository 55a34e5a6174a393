package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/stratakv/strata/kv"
)

const (
	envPrefix           = "STRATA"
	defaultDatabasePath = "strata.db"
	defaultLogLevel     = "info"
)

// AppConfig captures runtime configuration for the strata CLI.
type AppConfig struct {
	DatabasePath string
	LogLevel     string
	ClientID     string
	Quorums      kv.QuorumDefaults
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper
// instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("client.id", "")
	configViper.SetDefault("quorum.r", 0)
	configViper.SetDefault("quorum.pr", 0)
	configViper.SetDefault("quorum.w", 0)
	configViper.SetDefault("quorum.dw", 0)
	configViper.SetDefault("quorum.pw", 0)
	configViper.SetDefault("quorum.rw", 0)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		DatabasePath: configViper.GetString("database.path"),
		LogLevel:     configViper.GetString("log.level"),
		ClientID:     configViper.GetString("client.id"),
		Quorums: kv.QuorumDefaults{
			R:  kv.Quorum(configViper.GetInt("quorum.r")),
			PR: kv.Quorum(configViper.GetInt("quorum.pr")),
			W:  kv.Quorum(configViper.GetInt("quorum.w")),
			DW: kv.Quorum(configViper.GetInt("quorum.dw")),
			PW: kv.Quorum(configViper.GetInt("quorum.pw")),
			RW: kv.Quorum(configViper.GetInt("quorum.rw")),
		},
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	for name, quorum := range map[string]kv.Quorum{
		"quorum.r":  c.Quorums.R,
		"quorum.pr": c.Quorums.PR,
		"quorum.w":  c.Quorums.W,
		"quorum.dw": c.Quorums.DW,
		"quorum.pw": c.Quorums.PW,
		"quorum.rw": c.Quorums.RW,
	} {
		if quorum < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}
