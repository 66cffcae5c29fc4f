package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds every recognized environment option. Required secrets fail
// the process at startup when absent.
type Config struct {
	Port       string
	GinMode    string
	CORSOrigin string

	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	AccessTTL  time.Duration
	BcryptCost int

	SuperUserName     string
	SuperUserMail     string
	SuperUserPassword string

	RegisterLimit  int
	RegisterWindow time.Duration

	UploadLimit  int
	UploadWindow time.Duration

	UploadDir  string
	APIBaseURL string

	AccessRulesPath string
	CasbinModelPath string

	AccessRules []AccessRule
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func required(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("%s environment variable must be set", k)
	}
	return v, nil
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	jwtSecret, err := required("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	superPass, err := required("SUPER_USER_INIT_PASSWORD")
	if err != nil {
		return nil, err
	}
	dbPassword, err := required("DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	bcryptCost, err := envInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:       env("PORT", "3000"),
		GinMode:    env("GIN_MODE", "release"),
		CORSOrigin: env("CORS_ORIGIN", ""),

		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUsername: env("DB_USERNAME", "postgres"),
		DBPassword: dbPassword,
		DBDatabase: env("DB_DATABASE", "aiwebcore"),

		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		JWTSecret:  jwtSecret,
		AccessTTL:  24 * time.Hour,
		BcryptCost: bcryptCost,

		SuperUserName:     env("SUPER_USER_INIT_NAME", "admin"),
		SuperUserMail:     env("SUPER_USER_INIT_MAIL", "admin@outlook.com"),
		SuperUserPassword: superPass,

		RegisterLimit:  10,
		RegisterWindow: 24 * time.Hour,

		UploadLimit:  5,
		UploadWindow: time.Minute,

		UploadDir:  env("UPLOAD_DIR", "uploads"),
		APIBaseURL: env("API_BASE_URL", "http://localhost:3000"),

		AccessRulesPath: env("ACCESS_RULES_PATH", "config/access_rules.yml"),
		CasbinModelPath: env("CASBIN_MODEL_PATH", "config/casbin_model.conf"),
	}

	rules, err := LoadAccessRules(cfg.AccessRulesPath)
	if err != nil {
		return nil, err
	}
	cfg.AccessRules = rules

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBDatabase)
}
