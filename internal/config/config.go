package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	SessionSecret     string
	SessionExpiry     time.Duration // plain login, server-side bound
	RememberMeExpiry  time.Duration // "remember me" login
	SessionCookieName string

	// Uploads
	UploadDir     string
	MaxImageBytes int64

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "litrevu")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_EXPIRY", "12h")
	v.SetDefault("REMEMBER_ME_EXPIRY", "336h") // 2 weeks
	v.SetDefault("SESSION_COOKIE_NAME", "litrevu_session")

	v.SetDefault("UPLOAD_DIR", "uploads/ticket_images")
	v.SetDefault("MAX_IMAGE_BYTES", int64(4*1024*1024))

	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")

	return &Config{
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		SessionSecret:     v.GetString("SESSION_SECRET"),
		SessionExpiry:     parseDuration(v.GetString("SESSION_EXPIRY"), 12*time.Hour),
		RememberMeExpiry:  parseDuration(v.GetString("REMEMBER_ME_EXPIRY"), 14*24*time.Hour),
		SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),

		UploadDir:     v.GetString("UPLOAD_DIR"),
		MaxImageBytes: v.GetInt64("MAX_IMAGE_BYTES"),

		Port:        v.GetString("PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
