package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config interface {
	BasePath() string
	Cookie() CookieConfig
	Detector() DetectorConfig
}

// CookieConfig locates the session credential.
type CookieConfig struct {
	URL      string
	Name     string
	Domain   string
	Jar      string
	Browsers []string
}

// DetectorConfig tunes the limit detector.
type DetectorConfig struct {
	Cooldown time.Duration
	Toast    time.Duration
	Debounce time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "~/.switcher.db")
	v.SetDefault("cookie.url", "https://claude.ai")
	v.SetDefault("cookie.name", "sessionKey")
	v.SetDefault("cookie.domain", ".claude.ai")
	v.SetDefault("cookie.jar", "~/.switcher.cookies.json")
	v.SetDefault("cookie.browsers", []string{})
	v.SetDefault("detector.cooldown", 2*time.Second)
	v.SetDefault("detector.toast", 4*time.Second)
	v.SetDefault("detector.debounce", time.Minute)
}

// LoadConfig reads .switcher.yaml from $SWITCHER_CONFIG_PATH or the working
// directory. A missing file leaves the defaults in place; SWITCHER_* env vars
// override either.
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".switcher") // .yaml is implicit
	v.SetEnvPrefix("SWITCHER")
	v.AutomaticEnv()

	if override := os.Getenv("SWITCHER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*fileConfig, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: path: %w", err)
	}
	jar, err := homedir.Expand(v.GetString("cookie.jar"))
	if err != nil {
		return nil, fmt.Errorf("config: cookie.jar: %w", err)
	}
	return &fileConfig{
		Path: path,
		CookieCfg: CookieConfig{
			URL:      v.GetString("cookie.url"),
			Name:     v.GetString("cookie.name"),
			Domain:   v.GetString("cookie.domain"),
			Jar:      jar,
			Browsers: v.GetStringSlice("cookie.browsers"),
		},
		DetectorCfg: DetectorConfig{
			Cooldown: v.GetDuration("detector.cooldown"),
			Toast:    v.GetDuration("detector.toast"),
			Debounce: v.GetDuration("detector.debounce"),
		},
	}, nil
}

type fileConfig struct {
	Path        string         `json:"path"`
	CookieCfg   CookieConfig   `json:"cookie"`
	DetectorCfg DetectorConfig `json:"detector"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Cookie() CookieConfig {
	return f.CookieCfg
}

func (f *fileConfig) Detector() DetectorConfig {
	return f.DetectorCfg
}
