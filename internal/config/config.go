package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env      Env
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// SessionSecret signs session tokens. The process refuses to start
	// without it.
	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string

	// SecureCookies is forced on in prod.
	SecureCookies bool
}

// FromEnv loads configuration from the environment, reading a .env file
// first when one is present.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	env := Env(envOr("ENV", string(EnvDev)))
	if env != EnvDev && env != EnvProd {
		env = EnvDev
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return Config{}, errors.New("config: SESSION_SECRET is required")
	}

	ttl := 7 * 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("config: invalid SESSION_TTL: " + v)
		}
		ttl = d
	}

	return Config{
		Env:           env,
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		SessionSecret: secret,
		SessionTTL:    ttl,
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
		SecureCookies: env == EnvProd || envBool("SECURE_COOKIES", false),
	}, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
