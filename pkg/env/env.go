// Package env reads configuration from the process environment, optionally
// seeded from a .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load loads environment variables from the given .env files, or ./.env when
// none are given. Missing files are not an error; variables already set in the
// environment are not overwritten.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// String returns the value of an environment variable or a default value
func String(name, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return defaultValue
}

// Int returns the value of an environment variable as int or a default value
func Int(name string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("environment variable %s must be an integer, got: %s", name, value)
	}
	return n, nil
}

// Float returns the value of an environment variable as float64 or a default value
func Float(name string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("environment variable %s must be a number, got: %s", name, value)
	}
	return f, nil
}
