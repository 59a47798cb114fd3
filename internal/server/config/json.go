package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration accepts both "1s"-style strings and integer nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return errors.New("invalid duration")
	}
}

// JsonConfig is the on-disk shape of the configuration file. Only fields
// present with a non-zero value override the current settings.
type JsonConfig struct {
	DatabaseDriver          string   `json:"database_driver"`
	DatabaseDSN             string   `json:"database_dsn"`
	ConnectTimeout          Duration `json:"connect_timeout"`
	BcryptCost              int      `json:"bcrypt_cost"`
	SecretKey               string   `json:"secret_key"`
	SessionValidityDuration Duration `json:"session_validity_duration"`
	LogLevel                string   `json:"log_level"`
	LogFormat               string   `json:"log_format"`
	AdminUsername           string   `json:"admin_username"`
	AdminPassword           string   `json:"admin_password"`
}

// parseJson loads path into config. An empty path means no file.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPassword, c.AdminPassword)
	if c.ConnectTimeout.Duration > 0 {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
