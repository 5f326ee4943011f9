package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"    validate:"required"`
	Progression ProgressionConfig `mapstructure:"progression" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// ProgressionConfig contains the tunable behavior of the update orchestrator.
type ProgressionConfig struct {
	// MaxCommitRetries bounds the retry loop on per-row commit conflicts.
	MaxCommitRetries int `mapstructure:"max_commit_retries" validate:"required,gte=1,lte=10"`

	// HistoryLimit caps the number of recent history entries returned per
	// skill in progress summaries.
	HistoryLimit int `mapstructure:"history_limit" validate:"required,gte=1,lte=100"`
}
