package config

import (
	"os"
	"strconv"
	"time"
)

// ==================== 运行配置 ====================

// Config 客户端运行配置，全部来自环境变量
type Config struct {
	// 后端服务地址
	BackendURL string
	// OAuth 回调监听地址
	CallbackAddr string
	// 缩略图临时目录（空表示 os.MkdirTemp）
	PreviewDir string
	// 会话缓存 DSN
	SessionDSN string
	// 网关请求超时
	RequestTimeout time.Duration
	// 启动时直接进入演示模式
	DemoMode bool
}

// Load 从环境变量读取配置
func Load() *Config {
	return &Config{
		BackendURL:     getEnv("STUDIO_BACKEND_URL", "http://localhost:8080"),
		CallbackAddr:   getEnv("STUDIO_CALLBACK_ADDR", "127.0.0.1:8399"),
		PreviewDir:     getEnv("STUDIO_PREVIEW_DIR", ""),
		SessionDSN:     getEnv("STUDIO_SESSION_DSN", "file::memory:?cache=shared"),
		RequestTimeout: getDuration("STUDIO_REQUEST_TIMEOUT", 60*time.Second),
		DemoMode:       getBool("STUDIO_DEMO_MODE", false),
	}
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
