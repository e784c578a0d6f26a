package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultDifficulty is the number of leading zero hex characters a
	// block hash needs when nothing else is configured.
	DefaultDifficulty = 3
	// MaxDifficulty bounds the difficulty accepted from configuration.
	// Each step multiplies the expected mining work by 16.
	MaxDifficulty = 8
	// EnvPrefix prefixes the environment variables read by Load.
	EnvPrefix = "VOTING"
	// EnvFile is loaded into the environment when present.
	EnvFile = ".env"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Difficulty int  `mapstructure:"difficulty"`
	Debug      bool `mapstructure:"debug"`
}

// Load builds the configuration from, in increasing precedence: defaults,
// configFile (skipped when empty), envFile and the process environment
// (VOTING_DIFFICULTY, VOTING_DEBUG). Variables already set in the
// environment win over envFile. A missing envFile is ignored.
func Load(configFile, envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("cannot read %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	v.SetDefault("difficulty", DefaultDifficulty)
	v.SetDefault("debug", false)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		dir, fileName := filepath.Split(configFile)
		ext := filepath.Ext(fileName)
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(fileName, ext))
		v.SetConfigType(strings.TrimPrefix(ext, "."))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("cannot read configuration %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("configuration can't be loaded: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Difficulty < 1 || c.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d must be between 1 and %d", ErrInvalidConfig, c.Difficulty, MaxDifficulty)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("difficulty=%d debug=%t", c.Difficulty, c.Debug)
}
