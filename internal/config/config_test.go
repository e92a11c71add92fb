package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wordsbot/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "123456:test-token" {
		t.Errorf("Telegram.Token = %q, want token from environment", cfg.Telegram.Token)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "info")
	}
	if cfg.Database.Path != "words_database.db" {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}
	if cfg.Scheduler.UTCOffsetHours != 3 {
		t.Errorf("Scheduler.UTCOffsetHours = %d, want 3", cfg.Scheduler.UTCOffsetHours)
	}
	if cfg.Words.Tag != "#WordsToLearn" {
		t.Errorf("Words.Tag = %q, want default tag", cfg.Words.Tag)
	}
	if cfg.Words.SampleSize != 5 {
		t.Errorf("Words.SampleSize = %d, want 5", cfg.Words.SampleSize)
	}
	if cfg.Words.SendDelay != 500*time.Millisecond {
		t.Errorf("Words.SendDelay = %v, want 500ms", cfg.Words.SendDelay)
	}

	daily, ok := cfg.Scheduler.Tasks[config.TaskDailyWords]
	if !ok {
		t.Fatal("daily words task missing from default scheduler config")
	}
	if !daily.Enabled || daily.Schedule != "0 12 * * *" {
		t.Errorf("daily words task = %+v, want enabled at 0 12 * * *", daily)
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig() without a token should fail validation")
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	path := filepath.Join(t.TempDir(), "bot_config.env")
	content := "TELEGRAM_BOT_TOKEN=987654:file-token\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Telegram.Token != "987654:file-token" {
		t.Errorf("Telegram.Token = %q, want token from env file", cfg.Telegram.Token)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("BOT_TELEGRAM_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "telegram:\n  token: \"555:yaml-token\"\nwords:\n  tag: \"#vocab\"\n  sample_size: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Telegram.Token != "555:yaml-token" {
		t.Errorf("Telegram.Token = %q, want token from yaml", cfg.Telegram.Token)
	}
	if cfg.Words.Tag != "#vocab" {
		t.Errorf("Words.Tag = %q, want tag from yaml", cfg.Words.Tag)
	}
	if cfg.Words.SampleSize != 7 {
		t.Errorf("Words.SampleSize = %d, want 7", cfg.Words.SampleSize)
	}
}
