package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream   UpstreamConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Attendance AttendanceConfig
	Console    ConsoleConfig
	Journal    JournalConfig
	Export     ExportConfig
}

// UpstreamConfig points the console at the institute API.
type UpstreamConfig struct {
	BaseURL    string
	QRBaseURL  string
	Timeout    time.Duration
	UserAgent  string
	CookieName string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AttendanceConfig controls how attendance timestamps are rendered.
type AttendanceConfig struct {
	Timezone   string
	TimeLayout string
}

// ConsoleConfig tunes per-session console state and snapshot caching.
type ConsoleConfig struct {
	SessionHeader string
	StateTTL      time.Duration
	SnapshotTTL   time.Duration
	CacheEnabled  bool
}

// JournalConfig toggles the postgres-backed submission journal.
type JournalConfig struct {
	Enabled bool
}

// ExportConfig toggles summary exports.
type ExportConfig struct {
	Enabled  bool
	PDFTitle string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL:    strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		QRBaseURL:  strings.TrimRight(v.GetString("UPSTREAM_QR_BASE_URL"), "/"),
		Timeout:    parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
		UserAgent:  v.GetString("UPSTREAM_USER_AGENT"),
		CookieName: v.GetString("UPSTREAM_COOKIE_NAME"),
	}
	if cfg.Upstream.QRBaseURL == "" {
		cfg.Upstream.QRBaseURL = cfg.Upstream.BaseURL
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Attendance = AttendanceConfig{
		Timezone:   v.GetString("ATTENDANCE_TIMEZONE"),
		TimeLayout: v.GetString("ATTENDANCE_TIME_LAYOUT"),
	}

	cfg.Console = ConsoleConfig{
		SessionHeader: v.GetString("CONSOLE_SESSION_HEADER"),
		StateTTL:      parseDuration(v.GetString("CONSOLE_STATE_TTL"), 12*time.Hour),
		SnapshotTTL:   parseDuration(v.GetString("CONSOLE_SNAPSHOT_TTL"), 5*time.Minute),
		CacheEnabled:  v.GetBool("ENABLE_SNAPSHOT_CACHE"),
	}

	cfg.Journal = JournalConfig{
		Enabled: v.GetBool("ENABLE_SUBMISSION_JOURNAL"),
	}

	cfg.Export = ExportConfig{
		Enabled:  v.GetBool("ENABLE_SUMMARY_EXPORT"),
		PDFTitle: v.GetString("EXPORT_PDF_TITLE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:5000")
	v.SetDefault("UPSTREAM_QR_BASE_URL", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_USER_AGENT", "tutora-console")
	v.SetDefault("UPSTREAM_COOKIE_NAME", "token")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tutora_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ATTENDANCE_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("ATTENDANCE_TIME_LAYOUT", "15:04:05")

	v.SetDefault("CONSOLE_SESSION_HEADER", "X-Console-Session")
	v.SetDefault("CONSOLE_STATE_TTL", "12h")
	v.SetDefault("CONSOLE_SNAPSHOT_TTL", "5m")
	v.SetDefault("ENABLE_SNAPSHOT_CACHE", true)

	v.SetDefault("ENABLE_SUBMISSION_JOURNAL", false)
	v.SetDefault("ENABLE_SUMMARY_EXPORT", true)
	v.SetDefault("EXPORT_PDF_TITLE", "Attendance Summary")
}

func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
