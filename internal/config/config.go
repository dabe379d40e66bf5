// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// SchedulerConfig overrides the scheduling algorithm defaults. Zero values
// keep the built-in parameters; see srs.ParamsConfig for the semantics.
type SchedulerConfig struct {
	MinEaseFactor      float64 `mapstructure:"min_ease_factor"      validate:"omitempty,gt=1"`
	MaxEaseFactor      float64 `mapstructure:"max_ease_factor"      validate:"omitempty,gtfield=MinEaseFactor"`
	MatureIntervalDays int     `mapstructure:"mature_interval_days" validate:"omitempty,gt=0"`
	OverdueGraceDays   int     `mapstructure:"overdue_grace_days"   validate:"omitempty,gt=0"`
}
