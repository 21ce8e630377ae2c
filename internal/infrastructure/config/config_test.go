package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Recommend.TopN)
	assert.Equal(t, 0.5, cfg.Recommend.MinMatchRatio)
	assert.Equal(t, 3.0, cfg.Recommend.NearExpiryDays)
	assert.Equal(t, 5, cfg.Recommend.FormMinMinutes)
	assert.Equal(t, 60, cfg.Recommend.FormMaxMinutes)
	assert.Equal(t, 20, cfg.Recommend.DefaultMinutes)
	assert.Equal(t, "김치,두부,계란,양파", cfg.Recommend.DefaultIngredients)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("DATA_RECIPES_PATH", "/srv/recipes.csv")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/srv/recipes.csv", cfg.Data.RecipesPath)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Data:   DataConfig{RecipesPath: "r.csv", ShelfLifePath: "s.csv"},
			Recommend: RecommendConfig{
				TopN: 5, MinMatchRatio: 0.5, NearExpiryDays: 3,
				FormMinMinutes: 5, FormMaxMinutes: 60, DefaultMinutes: 20,
			},
			Cache: CacheConfig{Backend: "memory", MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"no sources", func(c *Config) { c.Data.ShelfLifePath = "" }, "sources are required"},
		{"bad top n", func(c *Config) { c.Recommend.TopN = 0 }, "top_n"},
		{"bad ratio", func(c *Config) { c.Recommend.MinMatchRatio = 1.5 }, "min_match_ratio"},
		{"default outside bounds", func(c *Config) { c.Recommend.DefaultMinutes = 90 }, "default minutes"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "disk" }, "unknown cache backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, "redis addr"},
		{"negative dedup window", func(c *Config) { c.DedupWindow = -time.Second }, "dedup window"},
		{"dedup disabled", func(c *Config) { c.DedupWindow = 0 }, ""},
		{"none backend", func(c *Config) { c.Cache = CacheConfig{Backend: "none"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
