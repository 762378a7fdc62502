package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath      = "~/.sdvig"
	defaultSaveDelay = 300 * time.Millisecond
)

// Config locates the on-disk state and tunes the saver.
type Config interface {
	BasePath() string
	SaveDelay() time.Duration
	Debug() bool
}

// LoadConfig reads .sdvig (yaml, json or toml) from SDVIG_CONFIG_PATH or the
// working directory. SDVIG_* environment variables override file values.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("save_delay", defaultSaveDelay)
	v.SetDefault("debug", false)
	v.SetConfigName(".sdvig") // .yaml is implicit
	v.SetEnvPrefix("SDVIG")
	v.AutomaticEnv()

	if override := os.Getenv("SDVIG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	delay := v.GetDuration("save_delay")
	if delay < 0 {
		delay = 0
	}
	return &fileConfig{Path: path, Delay: delay, Verbose: v.GetBool("debug")}, nil
}

// NewConfig builds a Config without touching viper; tests and embedders use
// it directly.
func NewConfig(path string, delay time.Duration) Config {
	return &fileConfig{Path: path, Delay: delay}
}

type fileConfig struct {
	Path    string        `json:"path"`
	Delay   time.Duration `json:"save_delay"`
	Verbose bool          `json:"debug"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) SaveDelay() time.Duration {
	return f.Delay
}

func (f *fileConfig) Debug() bool {
	return f.Verbose
}
