package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int               `json:"port"`
	LogConfig   logger.LogConfig  `json:"log_config"`
	RecordStore RecordStoreConfig `json:"record_store"`
	DB          DBConfig          `json:"db"`
	AI          AIConfig          `json:"ai"`
	History     HistoryConfig     `json:"history"`
}

type RecordStoreConfig struct {
	// json loads the employee database file once at startup; postgres
	// snapshots the employee_records table instead and needs db.dsn.
	Type string `json:"type"`
	Path string `json:"path"`
}

type DBConfig struct {
	// Optional. When set, embeddings are also cached in Postgres and the
	// cleanup job runs.
	DSN              string `json:"dsn"`
	CacheKeepDays    int    `json:"cache_keep_days"`
	CacheCleanupCron string `json:"cache_cleanup_cron"`
}

type AIProviderConfig struct {
	Provider      string                 `json:"provider"`
	GenerateModel string                 `json:"generate_model"`
	EmbedModel    string                 `json:"embed_model"`
	Args          map[string]interface{} `json:"args"`
}

type AIConfig struct {
	// Providers are tried in order; the original deployment ran openai
	// first with gemini as backup.
	Providers            []AIProviderConfig `json:"providers"`
	EmbedCacheSize       int                `json:"embed_cache_size"`
	EmbedCacheTTLMinutes int                `json:"embed_cache_ttl_minutes"`
}

type HistoryConfig struct {
	RetentionDays int `json:"retention_days"`
}

// Env var holding the API key per provider, matching the original .env.
var providerKeyEnv = map[string]string{
	"gemini": "GOOGLE_API_KEY",
	"openai": "OPENAI_API_KEY",
}

func Load(path string) (*Config, error) {
	// Best effort, keys may come from the config file instead.
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.RecordStore.Type == "" {
		cfg.RecordStore.Type = "json"
	}
	switch cfg.RecordStore.Type {
	case "json":
		if cfg.RecordStore.Path == "" {
			return nil, fmt.Errorf("record_store.path is required for json store")
		}
	case "postgres":
		if cfg.DB.DSN == "" {
			return nil, fmt.Errorf("db.dsn is required for postgres record store")
		}
	default:
		return nil, fmt.Errorf("record_store.type must be json or postgres")
	}
	if len(cfg.AI.Providers) == 0 {
		return nil, fmt.Errorf("ai.providers is required")
	}
	for i := range cfg.AI.Providers {
		p := &cfg.AI.Providers[i]
		if p.Provider == "" {
			return nil, fmt.Errorf("ai.providers[%d].provider is required", i)
		}
		if p.Args == nil {
			p.Args = map[string]interface{}{}
		}
		if key, _ := p.Args["api_key"].(string); strings.TrimSpace(key) == "" {
			if env := providerKeyEnv[strings.ToLower(p.Provider)]; env != "" {
				p.Args["api_key"] = os.Getenv(env)
			}
		}
	}
	if cfg.AI.EmbedCacheSize == 0 {
		cfg.AI.EmbedCacheSize = 1024
	}
	if cfg.AI.EmbedCacheTTLMinutes == 0 {
		cfg.AI.EmbedCacheTTLMinutes = 360
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = 7
	}
	if cfg.DB.CacheKeepDays == 0 {
		cfg.DB.CacheKeepDays = 30
	}
	if cfg.DB.CacheCleanupCron == "" {
		cfg.DB.CacheCleanupCron = "0 4 * * *"
	}
	return &cfg, nil
}
