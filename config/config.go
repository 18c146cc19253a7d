package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string
	Server    Server
	Database  Database
	Redis     Redis
	JWT       JWT
	Gemini    Gemini
	RSS       RSS
	Admin     Admin
	CORS      CORS
	Telemetry Telemetry
}

type Server struct {
	Port string
}

type Database struct {
	Driver     string // postgres | sqlite
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type JWT struct {
	Secret    string
	ExpiresIn time.Duration
}

type Gemini struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type RSS struct {
	FeedURL    string
	SourceName string
	Schedule   string
	Enabled    bool
}

// Admin guards the reset and manual ingestion endpoints. Off by default so
// existing clients keep working.
type Admin struct {
	AuthRequired bool
}

type CORS struct {
	AllowedOrigins []string
}

type Telemetry struct {
	Enabled     bool
	Exporter    string // stdout | otlp
	ServiceName string
	SampleRatio float64
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_SQLITE_PATH", "editorly.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRES_IN", "168h")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_TIMEOUT", "40s")
	v.SetDefault("RSS_FEED_URL", "https://www.thehindu.com/feeder/default.rss")
	v.SetDefault("RSS_SOURCE_NAME", "The Hindu")
	v.SetDefault("RSS_SCHEDULE", "0 0 */3 * * *")
	v.SetDefault("RSS_ENABLED", true)
	v.SetDefault("ADMIN_AUTH_REQUIRED", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER", "stdout")
	v.SetDefault("OTEL_SERVICE_NAME", "editorly-api")
	v.SetDefault("OTEL_SAMPLER_RATIO", 1.0)
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, using environment only")
	}

	cfg := load(v)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Server.Port).
		Str("db_driver", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Addr != "").
		Bool("gemini", cfg.Gemini.APIKey != "").
		Bool("rss_enabled", cfg.RSS.Enabled).
		Bool("admin_auth_required", cfg.Admin.AuthRequired).
		Msg("Config loaded")
	return cfg, nil
}

func load(v *viper.Viper) *Config {
	var cfg Config

	cfg.Env = v.GetString("APP_ENV")
	cfg.Server.Port = v.GetString("SERVER_PORT")

	cfg.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	cfg.Database.Host = v.GetString("DATABASE_HOST")
	cfg.Database.Port = v.GetString("DATABASE_PORT")
	cfg.Database.User = v.GetString("DATABASE_USER")
	cfg.Database.Password = v.GetString("DATABASE_PASSWORD")
	cfg.Database.Name = v.GetString("DATABASE_NAME")
	cfg.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	cfg.Database.SQLitePath = v.GetString("DATABASE_SQLITE_PATH")

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.ExpiresIn = v.GetDuration("JWT_EXPIRES_IN")

	cfg.Gemini.APIKey = v.GetString("GEMINI_API_KEY")
	cfg.Gemini.Model = v.GetString("GEMINI_MODEL")
	cfg.Gemini.Timeout = v.GetDuration("GEMINI_TIMEOUT")

	cfg.RSS.FeedURL = v.GetString("RSS_FEED_URL")
	cfg.RSS.SourceName = v.GetString("RSS_SOURCE_NAME")
	cfg.RSS.Schedule = v.GetString("RSS_SCHEDULE")
	cfg.RSS.Enabled = v.GetBool("RSS_ENABLED")

	cfg.Admin.AuthRequired = v.GetBool("ADMIN_AUTH_REQUIRED")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
		}
	}

	cfg.Telemetry.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.Telemetry.Exporter = strings.ToLower(v.GetString("OTEL_EXPORTER"))
	cfg.Telemetry.ServiceName = v.GetString("OTEL_SERVICE_NAME")
	cfg.Telemetry.SampleRatio = v.GetFloat64("OTEL_SAMPLER_RATIO")

	if cfg.JWT.ExpiresIn <= 0 {
		cfg.JWT.ExpiresIn = 7 * 24 * time.Hour
	}
	if cfg.Gemini.Timeout <= 0 {
		cfg.Gemini.Timeout = 40 * time.Second
	}
	return &cfg
}
