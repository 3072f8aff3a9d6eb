package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = ":8080"
	defaultTokenTTL = 24 * time.Hour
)

type ENV struct {
	DBHost                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBPort                 string
	Port                   string
	AppEnv                 string
	AppAuthKey             string
	AppEncKey              string
	TokenTTL               time.Duration
	AllowAdminRegistration bool
	EmailHost              string
	EmailPort              string
	EmailUsername          string
	EmailPassword          string
	EmailFrom              string
}

// LoadEnv reads .env if present and then the process environment.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("LoadEnv: no .env file found, using process environment")
	}

	env := ENV{
		DBHost:                 os.Getenv("DB_HOST"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBPort:                 os.Getenv("DB_PORT"),
		Port:                   normalizePort(os.Getenv("APP_PORT")),
		AppEnv:                 os.Getenv("APP_ENV"),
		AppAuthKey:             os.Getenv("APP_AUTH_KEY"),
		AppEncKey:              os.Getenv("APP_ENC_KEY"),
		TokenTTL:               parseDuration("TOKEN_TTL", os.Getenv("TOKEN_TTL"), defaultTokenTTL),
		AllowAdminRegistration: parseBool("ALLOW_ADMIN_REGISTRATION", os.Getenv("ALLOW_ADMIN_REGISTRATION")),
		EmailHost:              os.Getenv("EMAIL_HOST"),
		EmailPort:              os.Getenv("EMAIL_PORT"),
		EmailUsername:          os.Getenv("EMAIL_USERNAME"),
		EmailPassword:          os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:              os.Getenv("EMAIL_FROM"),
	}
	if env.EmailFrom == "" {
		env.EmailFrom = env.EmailUsername
	}
	return env
}

func (e ENV) IsProduction() bool {
	return strings.EqualFold(e.AppEnv, "production")
}

// MailEnabled reports whether enough SMTP settings are present to send mail.
func (e ENV) MailEnabled() bool {
	return e.EmailHost != "" && e.EmailPort != "" && e.EmailFrom != ""
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return defaultPort
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func parseDuration(key, raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("LoadEnv: invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func parseBool(key, raw string) bool {
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("LoadEnv: invalid %s %q, using false", key, raw)
		return false
	}
	return b
}
