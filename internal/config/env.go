package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names recognized at the CLI boundary.
const (
	EnvInput     = "CREDSIFT_INPUT"
	EnvOutput    = "CREDSIFT_OUTPUT"
	EnvRoot      = "CREDSIFT_ROOT"
	EnvThreshold = "CREDSIFT_THRESHOLD"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat .env: %w", err)
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// EnvString returns the named environment value, or nil if unset or empty.
func EnvString(name string) *string {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	return &v
}

// EnvInt returns the named environment value parsed as an int, or an error
// for a value that is set but not numeric.
func EnvInt(name string) (*int, error) {
	v := os.Getenv(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	return &n, nil
}
