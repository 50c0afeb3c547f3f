// Package config はアプリケーションの設定を .env ファイルと環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sheetssend-cloud/tewtest/pkg/generator"
)

const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvModel       = "GEMINI_MODEL"
	EnvBaseURL     = "GEMINI_BASE_URL"
	EnvAspectRatio = "COVER_ASPECT_RATIO"
	EnvHTTPAddr    = "HTTP_ADDR"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"

	DefaultHTTPAddr = ":8080"
)

// ErrMissingAPIKey は生成に必要な API キーが設定されていない場合のエラーです。
var ErrMissingAPIKey = errors.New(EnvAPIKey + " is not set")

// Config はアプリケーション全体の設定です。
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	AspectRatio string
	HTTPAddr    string
	LogLevel    slog.Level
	LogFormat   string // "text" または "json"
}

// Load は envFiles（省略時は .env）を読み込んでから環境変数で設定を組み立てます。
// 既に設定されている環境変数は .env で上書きしません。存在しない .env は無視します。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", f, err)
		}
	}

	level, err := parseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:      os.Getenv(EnvAPIKey),
		Model:       getenv(EnvModel, generator.DefaultModel),
		BaseURL:     os.Getenv(EnvBaseURL),
		AspectRatio: getenv(EnvAspectRatio, generator.DefaultAspectRatio),
		HTTPAddr:    getenv(EnvHTTPAddr, DefaultHTTPAddr),
		LogLevel:    level,
		LogFormat:   strings.ToLower(getenv(EnvLogFormat, "text")),
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%s は text か json を指定してください: %q", EnvLogFormat, cfg.LogFormat)
	}
	return cfg, nil
}

// Validate は表紙生成に必要な設定が揃っているかを確認します。
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// NewLogger は設定に従った slog.Logger を返します。
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%s が不正です: %w", EnvLogLevel, err)
	}
	return level, nil
}
