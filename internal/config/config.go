// Package config defines the application configuration and loads it from a
// YAML file and the environment. The environment alone is a complete
// configuration surface: a missing file is only an error when one was
// explicitly requested.
package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/service-optimizer/internal/provider"
	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for service-optimizer.
type Configuration struct {
	Procedure ProcedureConfig       `mapstructure:"procedure"`
	Influx    provider.InfluxConfig `mapstructure:"influx"`
	Logging   LoggingConfig         `mapstructure:"logging"`
}

// ProcedureConfig locates the computation procedure and selects how it runs.
type ProcedureConfig struct {
	Path           string   `mapstructure:"path"`
	Args           []string `mapstructure:"args"`
	Strategy       string   `mapstructure:"strategy"`
	TimeoutSeconds int      `mapstructure:"timeoutSeconds"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// envBindings maps configuration keys to the environment variables that can
// supply them without a config file.
var envBindings = map[string]string{
	"procedure.path":           "OPTIMIZER_PROCEDURE_PATH",
	"procedure.strategy":       "OPTIMIZER_STRATEGY",
	"procedure.timeoutSeconds": "OPTIMIZER_TIMEOUT_SECONDS",
	"influx.url":               "INFLUXDB_URL",
	"influx.token":             "INFLUXDB_TOKEN",
	"influx.org":               "INFLUXDB_ORG",
	"influx.bucket":            "INFLUXDB_BUCKET",
}

// LoadConfiguration loads configuration from the given YAML file and the
// environment. An empty path skips the file entirely.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()

	v.SetDefault("procedure.path", "")
	v.SetDefault("procedure.args", []string{})
	v.SetDefault("procedure.strategy", constants.StrategyProcess)
	v.SetDefault("procedure.timeoutSeconds", int(constants.DefaultProcedureTimeout/time.Second))
	v.SetDefault("influx.url", "")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "")
	v.SetDefault("influx.bucket", "")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (conf *Configuration) validate() error {
	switch conf.Procedure.Strategy {
	case constants.StrategyProcess, constants.StrategyInProcess:
	default:
		return fmt.Errorf("invalid procedure strategy %q: expected %s or %s",
			conf.Procedure.Strategy, constants.StrategyProcess, constants.StrategyInProcess)
	}
	if conf.Procedure.TimeoutSeconds < 0 {
		return fmt.Errorf("procedure timeout must not be negative, got %d", conf.Procedure.TimeoutSeconds)
	}
	return nil
}

// ProcedureTimeout returns the configured timeout as a duration, falling
// back to the default when unset.
func (conf *Configuration) ProcedureTimeout() time.Duration {
	if conf.Procedure.TimeoutSeconds <= 0 {
		return constants.DefaultProcedureTimeout
	}
	return time.Duration(conf.Procedure.TimeoutSeconds) * time.Second
}
