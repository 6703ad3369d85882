package config

import (
	"time"

	"github.com/spf13/pflag"
)

// ServeConfig holds configuration for the HTTP API.
type ServeConfig struct {
	Config
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"addr":          ":8080",
		"read-timeout":  10 * time.Second,
		"write-timeout": 30 * time.Second,
	})
	if err != nil {
		return ServeConfig{}, err
	}

	return ServeConfig{
		Config:       common(v),
		Addr:         v.GetString("addr"),
		ReadTimeout:  v.GetDuration("read-timeout"),
		WriteTimeout: v.GetDuration("write-timeout"),
	}, nil
}
