// Package config loads deployment configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port    int
	Backend string // "sqlite" or "file"
	DBPath  string // sqlite backend
	DataDir string // file backend

	AdminName       string
	DefaultCeiling  int
	SessionTTLHours int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string
}

// Load reads the environment. A missing .env file is fine; explicit
// environment variables always win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg := &Config{
		Port:            int(getEnvAsInt("PORT", 8080)),
		Backend:         getEnv("BACKEND", "sqlite"),
		DBPath:          getEnv("DB_PATH", "leave.db"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		AdminName:       getEnv("ADMIN_NAME", ""),
		DefaultCeiling:  int(getEnvAsInt("DEFAULT_CEILING", 3)),
		SessionTTLHours: int(getEnvAsInt("SESSION_TTL_HOURS", 12)),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        int(getEnvAsInt("SMTP_PORT", 587)),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPass:        getEnv("SMTP_PASS", ""),
		MailFrom:        getEnv("MAIL_FROM", ""),
		MailTo:          getEnv("MAIL_TO", ""),
	}

	if cfg.Backend != "sqlite" && cfg.Backend != "file" {
		logrus.Fatalf("unknown BACKEND %q (want sqlite or file)", cfg.Backend)
	}
	if cfg.DefaultCeiling < 1 {
		logrus.Fatalf("DEFAULT_CEILING must be at least 1, got %d", cfg.DefaultCeiling)
	}

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}
	return defaultVal
}
