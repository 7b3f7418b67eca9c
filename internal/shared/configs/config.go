package configs

import "fmt"

// Config holds all configuration for the application.
type Config struct {
	App    AppConfig    `mapstructure:"app" validate:"required"`
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Log    LogConfig    `mapstructure:"log" validate:"required"`
	Events EventsConfig `mapstructure:"events" validate:"required"`
}

// AppConfig identifies the service in health responses and app_info.
type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int    `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int    `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int    `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int    `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	ShutdownTimeout   int    `mapstructure:"shutdown_timeout" validate:"required,min=1"`    // seconds
}

// Addr returns the listen address, e.g. "0.0.0.0:5000".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error"`
}

// EventsConfig sizes the in-process item event queue.
type EventsConfig struct {
	Partitions int `mapstructure:"partitions" validate:"required,min=1,max=64"`
	Buffer     int `mapstructure:"buffer" validate:"required,min=1"`
}
