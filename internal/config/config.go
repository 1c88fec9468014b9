package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         []byte
	TokenTTL          time.Duration
	CORSOrigins       []string
	RequestTimeoutSec int
	DBMaxConns        int
	DBMinConns        int
	DBMaxConnLifetime time.Duration
	AuthRateRPS       float64
	AuthRateBurst     int
}

func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		jwtSecret = "default-secret-min-32-chars-required!!"
	}
	cors := os.Getenv("CORS_ORIGINS")
	if cors == "" {
		cors = "http://localhost:5173"
	}
	var origins []string
	for _, o := range strings.Split(cors, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	return &Config{
		Port:              port,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         []byte(jwtSecret),
		TokenTTL:          getDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigins:       origins,
		RequestTimeoutSec: getInt("REQUEST_TIMEOUT_SEC", 30),
		DBMaxConns:        getInt("DB_MAX_CONNS", 0),
		DBMinConns:        getInt("DB_MIN_CONNS", 0),
		DBMaxConnLifetime: getDuration("DB_MAX_CONN_LIFETIME", 0),
		AuthRateRPS:       getFloat("AUTH_RATE_RPS", 5),
		AuthRateBurst:     getInt("AUTH_RATE_BURST", 10),
	}
}

func getInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}
