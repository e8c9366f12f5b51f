package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	minBufferSize     = 4096
	maxBufferSize     = 1048576
	defaultBufferSize = "32768"
)

type config struct {
	httpPort   string
	bufferSize int

	logLevel       string
	uploadDir      string
	trustForwarded bool

	pprofEnabled bool
	pprofPort    string
}

func parse() (*config, error) {
	httpPort := getenv("HTTP_PORT", "8080")
	if err := validatePort("HTTP_PORT", httpPort); err != nil {
		return nil, err
	}

	logLevel := strings.ToLower(getenv("LOG_LEVEL", "info"))
	if _, err := logrus.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}

	pprofEnabled := getenvBool("PPROF_ENABLED", false)
	pprofPort := getenv("PPROF_PORT", "6060")
	if pprofEnabled {
		if err := validatePort("PPROF_PORT", pprofPort); err != nil {
			return nil, err
		}
	}

	return &config{
		httpPort:       httpPort,
		bufferSize:     parseBufferSize(),
		logLevel:       logLevel,
		uploadDir:      getenv("UPLOAD_DIR", ""),
		trustForwarded: getenvBool("TRUST_FORWARDED", false),
		pprofEnabled:   pprofEnabled,
		pprofPort:      pprofPort,
	}, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}

func validatePort(key, raw string) error {
	if _, err := strconv.ParseUint(raw, 10, 16); err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return nil
}

func parseBufferSize() int {
	raw := getenv("BUFFER_SIZE", defaultBufferSize)
	size, err := strconv.Atoi(raw)
	if err != nil || size < minBufferSize || size > maxBufferSize {
		logrus.WithField("value", raw).Warn("Invalid BUFFER_SIZE, falling back to 4096")
		return minBufferSize
	}
	return size
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val == "true"
}
