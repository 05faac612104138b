package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the ArtYatra backend.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Swecha  SwechaConfig  `mapstructure:"swecha"`
	Search  SearchConfig  `mapstructure:"search"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server, auth and upload-limit settings
type ServerConfig struct {
	Address          string        `mapstructure:"address"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	ClassifyMaxBytes int64         `mapstructure:"classify_max_bytes"`
	RelayMaxBytes    int64         `mapstructure:"relay_max_bytes"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxSessionTTL    time.Duration `mapstructure:"max_session_ttl"`
}

// LLMConfig selects and configures the classification provider
type LLMConfig struct {
	Provider string       `mapstructure:"provider"` // gemini or openai
	Gemini   GeminiConfig `mapstructure:"gemini"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// StorageConfig contains record-store and session-store settings
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"` // memory or postgres
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres connection string from the configured fields.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", errors.New("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// RedisConfig contains Redis connection settings for the session store
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// SwechaConfig points at the external cultural-heritage archive API
type SwechaConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	DefaultCategoryID string        `mapstructure:"default_category_id"`
}

// SearchConfig bounds the geolocation category search
type SearchConfig struct {
	MinRadiusKm  float64 `mapstructure:"min_radius_km"`
	MaxRadiusKm  float64 `mapstructure:"max_radius_km"`
	ImageBaseURL string  `mapstructure:"image_base_url"`
}

// LoadConfig reads configuration from a yaml file plus ARTYATRA_* environment
// overrides. A missing file is fine; defaults cover every knob.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":8787")
	viper.SetDefault("server.classify_max_bytes", 10<<20)
	viper.SetDefault("server.relay_max_bytes", 20<<20)
	viper.SetDefault("server.idle_timeout", 30*time.Minute)
	viper.SetDefault("server.max_session_ttl", 8*time.Hour)
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("llm.gemini.temperature", 0.0)
	viper.SetDefault("llm.openai.model", "gpt-4o-mini")
	viper.SetDefault("llm.openai.temperature", 0.0)
	viper.SetDefault("llm.openai.max_tokens", 1024)
	viper.SetDefault("llm.openai.timeout", 30*time.Second)
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.redis.timeout", 5*time.Second)
	viper.SetDefault("swecha.base_url", "https://api.corpus.swecha.org/api/v1")
	viper.SetDefault("swecha.timeout", 60*time.Second)
	viper.SetDefault("swecha.default_category_id", "4366cab1-031e-4b37-816b-311ee34461a9")
	viper.SetDefault("search.min_radius_km", 1)
	viper.SetDefault("search.max_radius_km", 100)
	viper.SetDefault("search.image_base_url", "https://placehold.co/480x320/png")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("ARTYATRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Storage.Redis.Validate(); err != nil {
		panic(err)
	}
	return &config
}
