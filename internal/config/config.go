package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`
	APIToken string `yaml:"api_token"`

	FetchTimeoutSeconds   int `yaml:"fetch_timeout_seconds"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	ChunkMaxTokens     int `yaml:"chunk_max_tokens"`
	ChunkOverlapTokens int `yaml:"chunk_overlap_tokens"`
	RAGTopK            int `yaml:"rag_top_k"`
	ContextTokenBudget int `yaml:"context_token_budget"`
	AnswerWorkers      int `yaml:"answer_workers"`

	EmbedBaseURL string  `yaml:"embed_base_url"`
	EmbedModel   string  `yaml:"embed_model"`
	EmbedAPIKey  string  `yaml:"embed_api_key"`
	EmbedRPS     float64 `yaml:"embed_rps"`

	GenBaseURL string  `yaml:"gen_base_url"`
	GenModel   string  `yaml:"gen_model"`
	GenAPIKey  string  `yaml:"gen_api_key"`
	GenRPS     float64 `yaml:"gen_rps"`

	CacheEnabled    bool `yaml:"cache_enabled"`
	CacheMaxEntries int  `yaml:"cache_max_entries"`
}

// Load builds the config from environment variables. When CONFIG_FILE points
// at a YAML file, its values are applied first and env vars override them.
func Load() (Config, error) {
	cfg := fromEnv(defaults())

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fromEnv(fileCfg)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		FetchTimeoutSeconds:   30,
		RequestTimeoutSeconds: 120,

		ChunkMaxTokens:     300,
		ChunkOverlapTokens: 60,
		RAGTopK:            5,
		ContextTokenBudget: 1200,
		AnswerWorkers:      4,

		EmbedBaseURL: "https://api.openai.com/v1",
		EmbedModel:   "text-embedding-3-small",
		EmbedRPS:     5,

		GenBaseURL: "https://api.openai.com/v1",
		GenModel:   "gpt-4o-mini",
		GenRPS:     2,

		CacheEnabled:    true,
		CacheMaxEntries: 64,
	}
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func fromEnv(base Config) Config {
	base.APIPort = envString("API_PORT", base.APIPort)
	base.LogLevel = envString("LOG_LEVEL", base.LogLevel)
	base.APIToken = envString("API_TOKEN", base.APIToken)

	base.FetchTimeoutSeconds = envInt("FETCH_TIMEOUT_SECONDS", base.FetchTimeoutSeconds)
	base.RequestTimeoutSeconds = envInt("REQUEST_TIMEOUT_SECONDS", base.RequestTimeoutSeconds)

	base.ChunkMaxTokens = envInt("CHUNK_MAX_TOKENS", base.ChunkMaxTokens)
	base.ChunkOverlapTokens = envInt("CHUNK_OVERLAP_TOKENS", base.ChunkOverlapTokens)
	base.RAGTopK = envInt("RAG_TOP_K", base.RAGTopK)
	base.ContextTokenBudget = envInt("CONTEXT_TOKEN_BUDGET", base.ContextTokenBudget)
	base.AnswerWorkers = envInt("ANSWER_WORKERS", base.AnswerWorkers)

	base.EmbedBaseURL = envString("EMBED_BASE_URL", base.EmbedBaseURL)
	base.EmbedModel = envString("EMBED_MODEL", base.EmbedModel)
	base.EmbedAPIKey = envString("EMBED_API_KEY", base.EmbedAPIKey)
	base.EmbedRPS = envFloat("EMBED_RPS", base.EmbedRPS)

	base.GenBaseURL = envString("GEN_BASE_URL", base.GenBaseURL)
	base.GenModel = envString("GEN_MODEL", base.GenModel)
	base.GenAPIKey = envString("GEN_API_KEY", base.GenAPIKey)
	base.GenRPS = envFloat("GEN_RPS", base.GenRPS)

	base.CacheEnabled = envBool("CACHE_ENABLED", base.CacheEnabled)
	base.CacheMaxEntries = envInt("CACHE_MAX_ENTRIES", base.CacheMaxEntries)

	return base
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
