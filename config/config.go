package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// PageSize is the number of posts per feed page.
	PageSize = 10

	AvatarSize = 80
)

type Config struct {
	Port         string
	DBUser       string
	DBPass       string
	DBHost       string
	DBName       string
	UploadBucket string
	FEOrigins    []string
	GinMode      string
}

// Load reads the configuration from the environment. A .env file, if
// present, is loaded first and never overrides real env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}

	cfg := &Config{
		Port:         port,
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       os.Getenv("DB_HOST"),
		DBName:       getEnvDefault("DB_NAME", "plume"),
		UploadBucket: os.Getenv("UPLOAD_BUCKET"),
		FEOrigins:    strings.Split(getEnvDefault("FE_ORIGINS", "http://localhost:3000"), ";"),
		GinMode:      os.Getenv("GIN_MODE"),
	}
	if cfg.DBUser == "" || cfg.DBHost == "" {
		return nil, fmt.Errorf("$DB_USER and $DB_HOST must be set")
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBName)
}

func getEnvDefault(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return val
}

// EnvInt is used for optional numeric overrides like pool sizes.
func EnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
