package store

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries everything resolved at startup: where the local store
// lives plus the optional remote calendar settings. Remote fields may
// be empty, which disables the corresponding capability; a store path
// that cannot be resolved is fatal.
type Config struct {
	Path string `json:"path"`

	GoogleAPIKey       string `json:"google_api_key"`
	GoogleCalendarID   string `json:"google_calendar_id"`
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
}

// LoadConfig reads the .tempo config file (current directory, home
// directory, or the directory named by TEMPO_CONFIG_PATH) and the
// TEMPO_* environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.tempo.db")
	v.SetConfigName(".tempo") // .yaml is implicit
	v.SetEnvPrefix("TEMPO")
	v.AutomaticEnv()

	if override := v.GetString("config_path"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: resolve store path: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("store: no store path configured")
	}

	return &Config{
		Path:               path,
		GoogleAPIKey:       v.GetString("google_api_key"),
		GoogleCalendarID:   v.GetString("google_calendar_id"),
		GoogleClientID:     v.GetString("google_client_id"),
		GoogleClientSecret: v.GetString("google_client_secret"),
	}, nil
}

// RemoteReadable reports whether remote events can be fetched at all.
func (c *Config) RemoteReadable() bool {
	return c.GoogleCalendarID != "" && c.GoogleAPIKey != ""
}
