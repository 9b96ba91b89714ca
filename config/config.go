package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config returns the raw value of an environment key after .env has been loaded.
func Config(key string) string {
	return os.Getenv(key)
}

type Settings struct {
	AppName     string
	Port        string
	Env         string
	AppURL      string
	CorsOrigins string
	LogLevel    string
	BodyLimitMB int

	DB       DBSettings
	JWT      JWTSettings
	Redis    RedisSettings
	SMTP     SMTPSettings
	Cloud    CloudinarySettings
	Seed     SeedSettings
	Schedule ScheduleSettings
}

type DBSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBSettings) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type JWTSettings struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// RedisSettings with an empty Addr selects the in-process broker.
type RedisSettings struct {
	Addr     string
	Password string
	DB       int
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTPSettings) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type CloudinarySettings struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type SeedSettings struct {
	SuperAdminEmail    string
	SuperAdminPassword string
}

// Email is the seed address in the lowercase form accounts are looked up by.
func (s SeedSettings) Email() string {
	return strings.ToLower(strings.TrimSpace(s.SuperAdminEmail))
}

type ScheduleSettings struct {
	Timezone     string
	ReminderDays int
}

// Load reads .env (when present) and the process environment.
func Load() (*Settings, error) {
	// a missing .env is fine, everything can come from the environment
	_ = godotenv.Load()

	dbPort, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	smtpPort, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	bodyLimit, err := intEnv("BODY_LIMIT_MB", 20)
	if err != nil {
		return nil, err
	}
	reminderDays, err := intEnv("REMINDER_DAYS", 7)
	if err != nil {
		return nil, err
	}
	accessTTL, err := durationEnv("JWT_ACCESS_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := durationEnv("JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		AppName:     stringEnv("APP_NAME", "event_planner"),
		Port:        stringEnv("APP_PORT", "8002"),
		Env:         stringEnv("APP_ENV", "development"),
		AppURL:      strings.TrimRight(stringEnv("APP_URL", "http://localhost:5173"), "/"),
		CorsOrigins: stringEnv("CORS_ORIGINS", "http://localhost:5173"),
		LogLevel:    stringEnv("LOG_LEVEL", "info"),
		BodyLimitMB: bodyLimit,
		DB: DBSettings{
			Host:     stringEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     stringEnv("DB_USER", "postgres"),
			Password: stringEnv("DB_PASSWORD", "postgres"),
			Name:     stringEnv("DB_NAME", "event_planner"),
			SSLMode:  stringEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTSettings{
			Secret:     Config("JWT_SECRET"),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Redis: RedisSettings{
			Addr:     Config("REDIS_ADDR"),
			Password: Config("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		SMTP: SMTPSettings{
			Host:     Config("SMTP_HOST"),
			Port:     smtpPort,
			Username: Config("SMTP_USERNAME"),
			Password: Config("SMTP_PASSWORD"),
			From:     Config("SMTP_FROM"),
		},
		Cloud: CloudinarySettings{
			CloudName: Config("CLOUDINARY_CLOUD_NAME"),
			APIKey:    Config("CLOUDINARY_API_KEY"),
			APISecret: Config("CLOUDINARY_API_SECRET"),
			Folder:    stringEnv("CLOUDINARY_FOLDER", "gallery"),
		},
		Seed: SeedSettings{
			SuperAdminEmail:    strings.ToLower(strings.TrimSpace(Config("SUPER_ADMIN_EMAIL"))),
			SuperAdminPassword: Config("SUPER_ADMIN_PASSWORD"),
		},
		Schedule: ScheduleSettings{
			Timezone:     stringEnv("SCHEDULE_TZ", "Asia/Manila"),
			ReminderDays: reminderDays,
		},
	}

	if s.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return s, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
