package configs

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	Port          string
	DBSource      string
	JWTSecret     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AdminUser     string
	AdminPassword string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8000"),
		DBSource:      getEnv("DB_SOURCE", "pos.db"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		AccessTTL:     time.Duration(getEnvInt("JWT_ACCESS_TTL_MIN", 60)) * time.Minute,
		RefreshTTL:    time.Duration(getEnvInt("JWT_REFRESH_TTL_HOURS", 24)) * time.Hour,
		AdminUser:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
