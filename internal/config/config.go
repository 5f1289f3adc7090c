package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Rounds RoundsConfig `yaml:"rounds"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RoundsConfig carries the round governance policy.
type RoundsConfig struct {
	// OpenOnCreate opens a round immediately at creation when its start time
	// has been reached, instead of waiting for an explicit activation.
	OpenOnCreate bool `yaml:"open_on_create"`
	// AllowEarlyClose permits closing a round before its end time.
	AllowEarlyClose bool `yaml:"allow_early_close"`
	// Admin restricts privileged actions (close/cancel/finalize/distribute)
	// to this caller identity. Empty means unrestricted.
	Admin string `yaml:"admin"`
	// LeftoverRecipient receives the unallocated budget remainder.
	LeftoverRecipient string `yaml:"leftover_recipient"`
	// ProposalAllowlist restricts proposal creation to the listed identities.
	// Empty means anyone may create proposals.
	ProposalAllowlist []string `yaml:"proposal_allowlist"`
	// ContributionAllowlist restricts contributing to the listed identities.
	// Empty means anyone may contribute.
	ContributionAllowlist []string `yaml:"contribution_allowlist"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "quadfund.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Rounds: RoundsConfig{
			OpenOnCreate: true,
		},
	}

	if path := os.Getenv("QUADFUND_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("QUADFUND_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("QUADFUND_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUADFUND_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("QUADFUND_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("QUADFUND_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if admin := os.Getenv("QUADFUND_ADMIN"); admin != "" {
		cfg.Rounds.Admin = admin
	}
	if recipient := os.Getenv("QUADFUND_LEFTOVER_RECIPIENT"); recipient != "" {
		cfg.Rounds.LeftoverRecipient = recipient
	}
	if list := os.Getenv("QUADFUND_PROPOSAL_ALLOWLIST"); list != "" {
		cfg.Rounds.ProposalAllowlist = splitList(list)
	}
	if list := os.Getenv("QUADFUND_CONTRIBUTION_ALLOWLIST"); list != "" {
		cfg.Rounds.ContributionAllowlist = splitList(list)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
