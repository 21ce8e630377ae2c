package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Data        DataConfig      `mapstructure:"data"`
	Recommend   RecommendConfig `mapstructure:"recommend"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// DataConfig 資料來源設定（食譜表與保存期限表）
type DataConfig struct {
	RecipesPath    string `mapstructure:"recipes_path"`
	ShelfLifePath  string `mapstructure:"shelf_life_path"`
	RecipesSheet   string `mapstructure:"recipes_sheet"`
	ShelfLifeSheet string `mapstructure:"shelf_life_sheet"`
}

// RecommendConfig 推薦規則與表單設定
type RecommendConfig struct {
	TopN               int     `mapstructure:"top_n"`
	MinMatchRatio      float64 `mapstructure:"min_match_ratio"`
	NearExpiryDays     float64 `mapstructure:"near_expiry_days"`
	FormMinMinutes     int     `mapstructure:"form_min_minutes"`
	FormMaxMinutes     int     `mapstructure:"form_max_minutes"`
	DefaultMinutes     int     `mapstructure:"default_minutes"`
	DefaultIngredients string  `mapstructure:"default_ingredients"`
}

// CacheConfig 推薦結果快取設定
type CacheConfig struct {
	Backend         string        `mapstructure:"backend"` // memory, redis, none
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時只使用環境變數與預設值
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("data.recipes_path", "DATA_RECIPES_PATH")
	viper.BindEnv("data.shelf_life_path", "DATA_SHELF_LIFE_PATH")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis.addr", "REDIS_ADDR")
	viper.BindEnv("cache.redis.password", "REDIS_PASSWORD")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-recommender")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.max_body_bytes", 64*1024)

	// 資料來源
	viper.SetDefault("data.recipes_path", "data/recipes.csv")
	viper.SetDefault("data.shelf_life_path", "data/shelf_life.csv")
	viper.SetDefault("data.recipes_sheet", "")
	viper.SetDefault("data.shelf_life_sheet", "")

	// 推薦規則
	viper.SetDefault("recommend.top_n", 5)
	viper.SetDefault("recommend.min_match_ratio", 0.5)
	viper.SetDefault("recommend.near_expiry_days", 3)
	viper.SetDefault("recommend.form_min_minutes", 5)
	viper.SetDefault("recommend.form_max_minutes", 60)
	viper.SetDefault("recommend.default_minutes", 20)
	viper.SetDefault("recommend.default_ingredients", "김치,두부,계란,양파")

	// 快取設定
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.redis.key_prefix", "recipe:recommend:")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "500ms")
	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Data.RecipesPath == "" || config.Data.ShelfLifePath == "" {
		return fmt.Errorf("recipe and shelf-life sources are required")
	}

	// 驗證推薦規則
	if config.Recommend.TopN <= 0 {
		return fmt.Errorf("invalid recommend top_n")
	}
	if config.Recommend.MinMatchRatio < 0 || config.Recommend.MinMatchRatio > 1 {
		return fmt.Errorf("invalid recommend min_match_ratio")
	}
	if config.Recommend.FormMinMinutes < 0 || config.Recommend.FormMinMinutes > config.Recommend.FormMaxMinutes {
		return fmt.Errorf("invalid form minute bounds")
	}
	if config.Recommend.DefaultMinutes < config.Recommend.FormMinMinutes ||
		config.Recommend.DefaultMinutes > config.Recommend.FormMaxMinutes {
		return fmt.Errorf("default minutes outside form bounds")
	}

	// 驗證快取設定
	switch config.Cache.Backend {
	case "none":
	case "memory":
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	case "redis":
		if config.Cache.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	if config.DedupWindow < 0 {
		return fmt.Errorf("invalid dedup window")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit settings")
	}

	return nil
}
