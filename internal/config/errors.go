package config

import "fmt"

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the flag or config key that's invalid
	Field string
	// Value is the invalid value provided
	Value any
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s (value: %v): %s", e.Field, e.Value, e.Reason)
}
