package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"thermonet/logger"
)

// LoadEnv reads a .env file from the working directory when there is one.
// Variables already set in the environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using the process environment")
	}
}

// env returns a typed environment value, or def when the variable is unset
// or does not parse.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		logger.Warn("ignoring malformed environment variable", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func envString(key, def string) string {
	return env(key, def, func(s string) (string, error) { return s, nil })
}

func envFloat(key string, def float64) float64 {
	return env(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func envInt(key string, def int) int {
	return env(key, def, strconv.Atoi)
}

func envBool(key string, def bool) bool {
	return env(key, def, strconv.ParseBool)
}
