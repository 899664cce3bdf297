package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		URL string
	}
	AzureOpenAI struct {
		Endpoint   string
		Deployment string
		APIVersion string
		APIKey     string
	}
	Model struct {
		Name           string
		EmbeddingModel string
	}
	Search struct {
		ContextResults int
		DefaultResults int
	}
	RateLimit struct {
		PerMinute int
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("model.embedding", "text-embedding-ada-002")
	viper.SetDefault("search.context_results", 3)
	viper.SetDefault("search.default_results", 5)
	viper.SetDefault("ratelimit.per_minute", 60)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	config.Database.URL = os.Getenv("DATABASE_URL")
	config.AzureOpenAI.Endpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	config.AzureOpenAI.Deployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")
	config.AzureOpenAI.APIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
	config.AzureOpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	config.Model.Name = os.Getenv("OPENAI_MODEL_NAME")

	config.Model.EmbeddingModel = viper.GetString("model.embedding")
	if m := os.Getenv("EMBEDDING_MODEL_NAME"); m != "" {
		config.Model.EmbeddingModel = m
	}

	config.Search.ContextResults = intFromEnv("SEARCH_CONTEXT_RESULTS", viper.GetInt("search.context_results"))
	config.Search.DefaultResults = intFromEnv("SEARCH_DEFAULT_RESULTS", viper.GetInt("search.default_results"))
	config.RateLimit.PerMinute = intFromEnv("RATE_LIMIT_PER_MINUTE", viper.GetInt("ratelimit.per_minute"))

	return &config, nil
}

// Validate checks the settings that must be present before the process
// can serve requests. A missing value here is a startup failure, never
// a per-request one.
func (c *Config) Validate() error {
	required := map[string]string{
		"AZURE_OPENAI_ENDPOINT":        c.AzureOpenAI.Endpoint,
		"AZURE_OPENAI_DEPLOYMENT_NAME": c.AzureOpenAI.Deployment,
		"AZURE_OPENAI_API_VERSION":     c.AzureOpenAI.APIVersion,
		"OPENAI_MODEL_NAME":            c.Model.Name,
		"DATABASE_URL":                 c.Database.URL,
	}

	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func intFromEnv(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
