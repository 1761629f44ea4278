// Package config loads settings from an optional YAML file with ETHERPETS_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ETHERPETS"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Decay    DecayConfig    `mapstructure:"decay"`
	Daily    DailyConfig    `mapstructure:"daily"`
	Quests   QuestsConfig   `mapstructure:"quests"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Users    UsersConfig    `mapstructure:"users"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig selects the store. Driver is "memory" or "postgres".
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	DSN        string `mapstructure:"dsn"`
	Migrations string `mapstructure:"migrations"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type DecayConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Schedule     string        `mapstructure:"schedule"`
	SweepTimeout time.Duration `mapstructure:"sweep_timeout"`
}

type DailyConfig struct {
	Reward        int `mapstructure:"reward"`
	CooldownHours int `mapstructure:"cooldown_hours"`
}

func (d DailyConfig) Cooldown() time.Duration {
	return time.Duration(d.CooldownHours) * time.Hour
}

type QuestsConfig struct {
	GrantCoins bool   `mapstructure:"grant_coins"`
	Timezone   string `mapstructure:"timezone"`
}

func (q QuestsConfig) Location() (*time.Location, error) {
	if q.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load quests timezone %q: %w", q.Timezone, err)
	}
	return loc, nil
}

type ChainConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Contract string `mapstructure:"contract"`
}

type UsersConfig struct {
	StartingCoins int `mapstructure:"starting_coins"`
}

// Load reads config.yaml from path (a file or a directory) when present.
// Every key can be overridden by ETHERPETS_<SECTION>_<KEY>.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if path != "" {
			v.AddConfigPath(path)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "memory":
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Daily.Reward < 0 || c.Daily.CooldownHours < 0 || c.Users.StartingCoins < 0 {
		return errors.New("daily and users amounts must not be negative")
	}
	if _, err := c.Quests.Location(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.migrations", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	v.SetDefault("decay.enabled", true)
	v.SetDefault("decay.schedule", "@hourly")
	v.SetDefault("decay.sweep_timeout", "5m")

	v.SetDefault("daily.reward", 50)
	v.SetDefault("daily.cooldown_hours", 24)

	v.SetDefault("quests.grant_coins", false)
	v.SetDefault("quests.timezone", "UTC")

	v.SetDefault("chain.enabled", false)
	v.SetDefault("chain.contract", "")

	v.SetDefault("users.starting_coins", 100)
}
