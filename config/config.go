package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g. TQ_LOG_LEVEL.
const EnvPrefix = "TQ_"

// Config holds runtime settings for the CLI.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format"` // text, json
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"` // text, json
	Limit  int    `mapstructure:"limit"`  // max rows rendered, 0 = all
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "WARN", Format: "text"},
		Output: OutputConfig{Format: "text", Limit: 50},
	}
}

// Load layers defaults, an optional config file and prefixed environment
// variables, in that order. TQ_OUTPUT_LIMIT maps to output.limit.
func Load(prefix, path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.limit", def.Output.Limit)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	prefixUpper := strings.ToUpper(prefix)
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefixUpper) {
			continue
		}
		// TQ_LOG_LEVEL -> log.level
		propKey := strings.TrimPrefix(pair[0], prefixUpper)
		propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
		propKey = strings.TrimPrefix(propKey, ".")
		v.Set(propKey, pair[1])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToUpper(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	return cfg, nil
}
