package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the assistant service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Vector  VectorConfig  `mapstructure:"vector"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Holiday HolidayConfig `mapstructure:"holiday"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains LLM provider settings.
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"` // gemini, openai
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	Temperature    float64       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return errors.New("llm.api_key is required")
	}
	return nil
}

// VectorConfig contains Pinecone index settings.
type VectorConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	IndexName string        `mapstructure:"index_name"`
	Cloud     string        `mapstructure:"cloud"`
	Region    string        `mapstructure:"region"`
	Dimension int           `mapstructure:"dimension"`
	Metric    string        `mapstructure:"metric"`
	TopK      int           `mapstructure:"top_k"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (v VectorConfig) Validate() error {
	if strings.TrimSpace(v.APIKey) == "" {
		return errors.New("vector.api_key is required")
	}
	if strings.TrimSpace(v.IndexName) == "" {
		return errors.New("vector.index_name is required")
	}
	if v.Dimension <= 0 {
		return errors.New("vector.dimension must be > 0")
	}
	return nil
}

// RedisConfig contains chat history store settings.
type RedisConfig struct {
	Host      string        `mapstructure:"host"`
	Port      string        `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return errors.New("redis.host is required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return errors.New("redis.port is required")
	}
	return nil
}

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// HolidayConfig contains Calendarific API settings.
type HolidayConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Country string        `mapstructure:"country"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IngestConfig contains document ingestion settings.
type IngestConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
	BatchSize    int `mapstructure:"batch_size"`
}

// LoadConfig loads config from file, falling back to env vars (HRDESK_*)
// and defaults when no file is present.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.model", "gemini-2.0-flash-exp")
	viper.SetDefault("llm.embedding_model", "text-embedding-004")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 2048)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("vector.index_name", "hr-vector-search-index")
	viper.SetDefault("vector.cloud", "aws")
	viper.SetDefault("vector.region", "us-east-1")
	viper.SetDefault("vector.dimension", 768)
	viper.SetDefault("vector.metric", "cosine")
	viper.SetDefault("vector.top_k", 3)
	viper.SetDefault("vector.timeout", 30*time.Second)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.key_prefix", "chat_history:")
	viper.SetDefault("redis.ttl", 24*time.Hour)
	viper.SetDefault("redis.timeout", 5*time.Second)
	viper.SetDefault("holiday.base_url", "https://calendarific.com/api/v2")
	viper.SetDefault("holiday.country", "IN")
	viper.SetDefault("holiday.timeout", 10*time.Second)
	viper.SetDefault("ingest.chunk_size", 1000)
	viper.SetDefault("ingest.chunk_overlap", 200)
	viper.SetDefault("ingest.batch_size", 64)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("HRDESK")
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
	return &config
}
