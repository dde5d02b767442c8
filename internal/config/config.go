package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	APIKey        string `mapstructure:"API_KEY"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBSource string `mapstructure:"DB_SOURCE"`

	MatchTolerance float64 `mapstructure:"MATCH_TOLERANCE"`

	GeocoderURL         string        `mapstructure:"GEOCODER_URL"`
	GeocoderUserAgent   string        `mapstructure:"GEOCODER_USER_AGENT"`
	GeocoderMinInterval time.Duration `mapstructure:"GEOCODER_MIN_INTERVAL"`
	WikipediaURL        string        `mapstructure:"WIKIPEDIA_URL"`
	WikipediaUserAgent  string        `mapstructure:"WIKIPEDIA_USER_AGENT"`
	UpstreamTimeout     time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	LLMProvider    string        `mapstructure:"LLM_PROVIDER"`
	LLMTimeout     time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMTemperature float64       `mapstructure:"LLM_TEMPERATURE"`
	OllamaURL      string        `mapstructure:"OLLAMA_API_URL"`
	OllamaModel    string        `mapstructure:"OLLAMA_MODEL"`
	OpenAIBaseURL  string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIAPIKey   string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel    string        `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey   string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string        `mapstructure:"GEMINI_MODEL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var defaults = map[string]any{
	"SERVER_ADDRESS":        ":3000",
	"API_KEY":               "",
	"DB_DRIVER":             DriverSQLite,
	"DB_SOURCE":             "data/locations.db",
	"MATCH_TOLERANCE":       0.1,
	"GEOCODER_URL":          "https://nominatim.openstreetmap.org",
	"GEOCODER_USER_AGENT":   "Tacitus-App",
	"GEOCODER_MIN_INTERVAL": "1s",
	"WIKIPEDIA_URL":         "https://en.wikipedia.org",
	"WIKIPEDIA_USER_AGENT":  "Tacitus-App",
	"UPSTREAM_TIMEOUT":      "10s",
	"LLM_PROVIDER":          ProviderOllama,
	"LLM_TIMEOUT":           "60s",
	"LLM_TEMPERATURE":       0.7,
	"OLLAMA_API_URL":        "http://localhost:11434/api/chat",
	"OLLAMA_MODEL":          "mistral",
	"OPENAI_BASE_URL":       "http://localhost:11434/v1",
	"OPENAI_API_KEY":        "ollama",
	"OPENAI_MODEL":          "mistral",
	"GEMINI_API_KEY":        "",
	"GEMINI_MODEL":          "gemini-2.5-flash",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "console",
}

// LoadConfig reads configuration from app.env in path, a .env file in the working
// directory and the environment. Environment variables win.
func LoadConfig(path string) (config Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	return config, config.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBSource == "" {
		return fmt.Errorf("config: DB_SOURCE is required")
	}
	if c.MatchTolerance <= 0 {
		return fmt.Errorf("config: MATCH_TOLERANCE must be positive, got %v", c.MatchTolerance)
	}
	switch c.LLMProvider {
	case ProviderOllama, ProviderOpenAI:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config: GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config: unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	return nil
}
