package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	// EntryPath 无结果时结果页重定向的提交入口
	EntryPath string `toml:"entryPath"`
	// Mode gin 运行模式: debug / release / test
	Mode string `toml:"mode"`
}

type InferenceConfig struct {
	URL              string `toml:"url"`
	TimeoutSeconds   int    `toml:"timeoutSeconds"`
	MaxResponseBytes int64  `toml:"maxResponseBytes"`
}

type SessionConfig struct {
	CookieName string `toml:"cookieName"`
	Path       string `toml:"path"`
	TTLSeconds int    `toml:"ttlSeconds"`
	SigningKey string `toml:"signingKey"`
	// SigningKeyEnv 优先于 SigningKey
	SigningKeyEnv string `toml:"signingKeyEnv"`
	// Insecure 仅本地 http 调试时关闭 Secure 属性
	Insecure bool `toml:"insecure"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
	Level   string `toml:"level"`
}

type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins"`
}

type SecureConfig struct {
	SSLRedirect   bool   `toml:"sslRedirect"`
	SSLHost       string `toml:"sslHost"`
	IsDevelopment bool   `toml:"isDevelopment"`
}

type Config struct {
	MainConfig      `toml:"mainConfig"`
	InferenceConfig `toml:"inferenceConfig"`
	SessionConfig   `toml:"sessionConfig"`
	LogConfig       `toml:"logConfig"`
	RateLimitConfig `toml:"rateLimitConfig"`
	CorsConfig      `toml:"corsConfig"`
	SecureConfig    `toml:"secureConfig"`
}

const (
	defaultConfigPath   = "configs/config_local.toml"
	DefaultInferenceURL = "https://cardiocheck.onrender.com/predict"
)

var (
	config *Config
	once   sync.Once
)

// Load 读取指定路径的 TOML 配置；文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Printf("配置文件 %s 不存在，使用默认设置", path)
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// GetConfig 懒加载全局配置，路径可由 CARDIO_CONFIG 覆盖
func GetConfig() *Config {
	once.Do(func() {
		path := strings.TrimSpace(os.Getenv("CARDIO_CONFIG"))
		if path == "" {
			path = defaultConfigPath
		}
		cfg, err := Load(path)
		if err != nil {
			log.Printf("加载配置文件失败: %v, 使用默认设置", err)
			cfg = &Config{}
			ApplyDefaults(cfg)
		}
		config = cfg
	})
	return config
}

// ApplyDefaults 填充缺省值
func ApplyDefaults(cfg *Config) {
	if cfg.AppName == "" {
		cfg.AppName = "CardioCheck"
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.EntryPath == "" {
		cfg.EntryPath = "/"
	}
	if cfg.Mode == "" {
		cfg.Mode = "release"
	}

	if cfg.InferenceConfig.URL == "" {
		cfg.InferenceConfig.URL = DefaultInferenceURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 5
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = 64 * 1024
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "prediction"
	}
	if cfg.SessionConfig.Path == "" {
		cfg.SessionConfig.Path = "/"
	}
	if cfg.TTLSeconds <= 0 {
		cfg.TTLSeconds = 300
	}
	if env := strings.TrimSpace(cfg.SigningKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			cfg.SigningKey = v
		}
	}

	if cfg.Level == "" {
		cfg.Level = "info"
	}

	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
}
