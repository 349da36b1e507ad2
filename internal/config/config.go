// Package config loads service configuration from an optional YAML file and
// YTSCRIBE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`

	OutputsDir string `mapstructure:"outputs_dir" validate:"required"`
	StaticDir  string `mapstructure:"static_dir"`

	YtDlpPath   string `mapstructure:"ytdlp_path" validate:"required"`
	FFmpegPath  string `mapstructure:"ffmpeg_path" validate:"required"`
	WhisperPath string `mapstructure:"whisper_path" validate:"required"`
	ModelsDir   string `mapstructure:"models_dir" validate:"required"`

	DefaultModel string `mapstructure:"default_model" validate:"required"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=console json"`
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads configuration with precedence env > file > defaults. An empty
// file path means defaults and env only; a named file that is missing is an
// error.
func Load(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("outputs_dir", "outputs")
	v.SetDefault("static_dir", "static")
	v.SetDefault("ytdlp_path", "yt-dlp")
	v.SetDefault("ffmpeg_path", "ffmpeg")
	v.SetDefault("whisper_path", "whisper-cli")
	v.SetDefault("models_dir", "models")
	v.SetDefault("default_model", "small")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetEnvPrefix("YTSCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags; validator reports the first offending
// field with its constraint.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
