// Package config provides configuration loading and validation for the
// bot. Values come from defaults, an optional config file (YAML or
// key=value .env), and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration parameters for all
// components of the bot: logging, Telegram transport, database,
// scheduler, and word collection.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Words     WordsConfig     `mapstructure:"words"`
}

// LoggerConfig controls log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credentials and runtime bot identity.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is filled at startup from GetMe and is not read from config.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig enables a scheduled task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig anchors scheduled tasks to a fixed wall-clock zone.
// The offset is a flat number of hours from UTC, deliberately not
// DST-aware (the daily broadcast always fires at the same UTC instant).
type SchedulerConfig struct {
	UTCOffsetHours int                   `mapstructure:"utc_offset_hours" validate:"min=-12,max=14"`
	Tasks          map[string]TaskConfig `mapstructure:"tasks"`
}

// WordsConfig controls word collection and the daily broadcast message.
type WordsConfig struct {
	Tag        string        `mapstructure:"tag"         validate:"required"`
	SampleSize int           `mapstructure:"sample_size" validate:"min=1,max=50"`
	SendDelay  time.Duration `mapstructure:"send_delay"  validate:"min=0,max=1m"`
	Header     string        `mapstructure:"header"      validate:"required"`
	Welcome    string        `mapstructure:"welcome"     validate:"required"`
}

// Task names used as keys in SchedulerConfig.Tasks and in the task registry.
const (
	TaskDailyWords     = "daily_words"
	TaskSQLMaintenance = "sql_maintenance"
)

// LoadConfig reads configuration from the given file path (missing file is
// fine, defaults apply), overlays BOT_* environment variables plus the
// legacy TELEGRAM_BOT_TOKEN variable, and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The token has historically been supplied through TELEGRAM_BOT_TOKEN;
	// keep honoring it ahead of the config file.
	if err := v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN", "BOT_TELEGRAM_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token environment variable: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
					return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
				}
			}
			slog.Info("Config file not found, using defaults and environment", "path", path)
		} else {
			slog.Debug("Config file loaded", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Legacy key=value config files carry the token under the flat
	// TELEGRAM_BOT_TOKEN key rather than the nested telegram.token.
	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = v.GetString("telegram_bot_token")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "words_database.db")

	v.SetDefault("scheduler.utc_offset_hours", 3) // Moscow time
	v.SetDefault("scheduler.tasks."+TaskDailyWords+".enabled", true)
	v.SetDefault("scheduler.tasks."+TaskDailyWords+".schedule", "0 12 * * *")
	v.SetDefault("scheduler.tasks."+TaskSQLMaintenance+".enabled", true)
	v.SetDefault("scheduler.tasks."+TaskSQLMaintenance+".schedule", "30 4 * * *")

	v.SetDefault("words.tag", "#WordsToLearn")
	v.SetDefault("words.sample_size", 5)
	v.SetDefault("words.send_delay", 500*time.Millisecond)
	v.SetDefault("words.header", "📚 Случайные слова дня для повторения:\n\n")
	v.SetDefault("words.welcome",
		"Привет! Я бот для работы с группами.\n\n"+
			"Добавь меня в группу, и я буду автоматически сохранять слова из сообщений "+
			"с пометкой #WordsToLearn.\n\n"+
			"Каждый день в 12:00 по МСК я буду отправлять 5 случайных слов для повторения!")
}
