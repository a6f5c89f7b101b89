package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Roast    RoastConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	Env             string        `env:"ENV" envDefault:"development"`
	AllowOrigins    string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Enabled       bool   `env:"DB_ENABLED" envDefault:"false"`
	Host          string `env:"DB_HOST" envDefault:"localhost"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER" envDefault:"postgres"`
	Password      string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName        string `env:"DB_NAME" envDefault:"resume_mocker"`
	LedgerEntries int    `env:"LEDGER_MEMORY_ENTRIES" envDefault:"200"`
}

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	// API_KEY is accepted for older deployments.
	FallbackAPIKey string `env:"API_KEY"`
	Model          string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL        string `env:"GEMINI_BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

type RoastConfig struct {
	// Timeout bounds the model call. Zero leaves the call unbounded.
	Timeout     time.Duration `env:"ROAST_TIMEOUT" envDefault:"0s"`
	Temperature float32       `env:"ROAST_TEMPERATURE" envDefault:"1.0"`
	// MaxConcurrent caps roasts in flight. Zero removes the cap.
	MaxConcurrent int `env:"ROAST_MAX_CONCURRENT" envDefault:"4"`
}

type StorageConfig struct {
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	MaxPDFPages int   `env:"MAX_PDF_PAGES" envDefault:"20"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	switch cfg.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}

	if cfg.Storage.MaxFileSize <= 0 {
		return nil, fmt.Errorf("MAX_FILE_SIZE must be positive")
	}

	return cfg, nil
}

// Key returns the Gemini credential, preferring GEMINI_API_KEY.
func (g GeminiConfig) Key() string {
	if key := strings.TrimSpace(g.APIKey); key != "" {
		return key
	}
	return strings.TrimSpace(g.FallbackAPIKey)
}

// Model returns the model identifier of the configured provider.
func (c *Config) Model() string {
	if c.LLM.Provider == ProviderOpenAI {
		return c.OpenAI.Model
	}
	return c.Gemini.Model
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
