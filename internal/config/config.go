package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port            string
	Env             string
	MaxUploadMemory int64 // bytes kept in memory while parsing multipart bodies
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type AuthConfig struct {
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

type StorageConfig struct {
	CloudinaryURL string
	CloudName     string
	APIKey        string
	APISecret     string
	Folder        string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment, optionally seeded by a local .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}
	return fromViper(viper.New())
}

func fromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()

	// Hosting platforms commonly inject PORT.
	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("MAX_UPLOAD_MEMORY", 32<<20)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRY", "8h")
	v.SetDefault("CLOUDINARY_FOLDER", "product-images")

	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Env:             v.GetString("SERVER_ENV"),
			MaxUploadMemory: v.GetInt64("MAX_UPLOAD_MEMORY"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_DATABASE"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Auth: AuthConfig{
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenTTL:      v.GetDuration("JWT_EXPIRY"),
		},
		Storage: StorageConfig{
			CloudinaryURL: v.GetString("CLOUDINARY_URL"),
			CloudName:     v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:        v.GetString("CLOUDINARY_API_KEY"),
			APISecret:     v.GetString("CLOUDINARY_API_SECRET"),
			Folder:        v.GetString("CLOUDINARY_FOLDER"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

// Validate reports every required setting that is missing.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be a positive duration"))
	}
	if c.Database.URL == "" && (c.Database.User == "" || c.Database.Database == "") {
		errs = append(errs, errors.New("DATABASE_URL or DB_USER and DB_DATABASE are required"))
	}
	if !c.Storage.HasURL() && !c.Storage.HasParams() {
		errs = append(errs, errors.New("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required"))
	}
	if !c.IsDevelopment() && len(c.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS is required outside development"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%s", d.Host, d.Port),
		Path:     d.Database,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

func (s StorageConfig) HasURL() bool { return s.CloudinaryURL != "" }

func (s StorageConfig) HasParams() bool {
	return s.CloudName != "" && s.APIKey != "" && s.APISecret != ""
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
