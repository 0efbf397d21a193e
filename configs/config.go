package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver     string
	DBSource     string
	Port         string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool

	// cart store: "memory" or "redis"
	CartBackend   string
	CartTTL       time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	LoginRatePerMin int
	LoginBurst      int
	CORSOrigins     []string

	AdminUsername   string
	AdminPassword   string
	KitchenUsername string
	KitchenPassword string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:     getEnv("DB_DRIVER", "sqlite"),
		DBSource:     getEnv("DB_SOURCE", "hotelfood.db"),
		Port:         getEnv("PORT", "8000"),
		JWTSecret:    getEnv("JWT_SECRET", "changeme"),
		JWTTTL:       getDuration("JWT_TTL", 24*time.Hour),
		CookieSecure: getBool("COOKIE_SECURE", false),

		CartBackend:   getEnv("CART_BACKEND", "memory"),
		CartTTL:       getDuration("CART_TTL", 12*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		LoginRatePerMin: getInt("LOGIN_RATE_PER_MIN", 10),
		LoginBurst:      getInt("LOGIN_BURST", 5),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),

		AdminUsername:   getEnv("ADMIN_USERNAME", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		KitchenUsername: getEnv("KITCHEN_USERNAME", ""),
		KitchenPassword: getEnv("KITCHEN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
