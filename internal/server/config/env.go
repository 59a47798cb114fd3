package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvFile is read before the environment is consulted. Variables already
// present in the process environment win over the file.
var EnvFile = ".env"

// parseEnv overlays EVENTDESK_* variables onto config.
//
//	EVENTDESK_DB_DRIVER        database driver
//	EVENTDESK_DB_DSN           data source name
//	EVENTDESK_CONNECT_TIMEOUT  duration, e.g. "5s"
//	EVENTDESK_BCRYPT_COST      int
//	EVENTDESK_SECRET_KEY       session signing secret
//	EVENTDESK_SESSION_TTL      duration, e.g. "12h"
//	EVENTDESK_LOG_LEVEL        debug|info|warn|error
//	EVENTDESK_LOG_FORMAT       json|text|zerolog|console
//	EVENTDESK_ADMIN_USERNAME   admin bootstrap
//	EVENTDESK_ADMIN_PASSWORD   admin bootstrap
func parseEnv(config *Config) error {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", EnvFile, err)
	}

	envString("EVENTDESK_DB_DRIVER", &config.DatabaseDriver)
	envString("EVENTDESK_DB_DSN", &config.DatabaseDSN)
	envString("EVENTDESK_SECRET_KEY", &config.SecretKey)
	envString("EVENTDESK_LOG_LEVEL", &config.LogLevel)
	envString("EVENTDESK_LOG_FORMAT", &config.LogFormat)
	envString("EVENTDESK_ADMIN_USERNAME", &config.AdminUsername)
	envString("EVENTDESK_ADMIN_PASSWORD", &config.AdminPassword)

	if err := envDuration("EVENTDESK_CONNECT_TIMEOUT", &config.ConnectTimeout); err != nil {
		return err
	}
	if err := envDuration("EVENTDESK_SESSION_TTL", &config.SessionValidityDuration); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("EVENTDESK_BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid int for EVENTDESK_BCRYPT_COST: %q", v)
		}
		config.BcryptCost = n
	}
	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %q", key, v)
	}
	*dst = d
	return nil
}
