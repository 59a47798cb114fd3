// Package config handles configuration for eventdesk: defaults, an
// environment overlay (optionally read from a .env file) and a JSON file
// overlay. Command-line flags are applied last by the CLI.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDriver: "sqlite" (embedded, default) or "postgres".
//   - DatabaseDSN: driver-specific data source name.
//   - ConnectTimeout: bound on connection acquisition and SQLite lock waits.
//   - BcryptCost: cost factor for password hashing.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionValidityDuration: lifetime of a session token.
//   - LogLevel / LogFormat: see logging.New.
//   - AdminUsername / AdminPassword: when both are set, the admin is seeded
//     at startup if it does not exist yet.
type Config struct {
	DatabaseDriver          string
	DatabaseDSN             string
	ConnectTimeout          time.Duration
	BcryptCost              int
	SecretKey               string
	SessionValidityDuration time.Duration
	LogLevel                string
	LogFormat               string
	AdminUsername           string
	AdminPassword           string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "data/eventdesk.db"
	c.ConnectTimeout = 10 * time.Second
	c.BcryptCost = bcrypt.DefaultCost
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 12 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then the environment
// and finally the JSON file at jsonPath (skipped when empty).
func LoadConfig(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, jsonPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if _, err := dbx.DialectFor(c.DatabaseDriver); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.SessionValidityDuration <= 0 {
		return fmt.Errorf("session validity must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("admin bootstrap needs both username and password")
	}
	return nil
}
