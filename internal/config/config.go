// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads originctl's runtime configuration from flags,
// environment variables, and an optional config file, via viper.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the fully resolved server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// NormalTimeout is the read deadline applied between messages outside
	// a recharge interlude.
	NormalTimeout time.Duration

	// RechargeTimeout is the read deadline applied while a recharge
	// interlude is open.
	RechargeTimeout time.Duration

	// LogLevel is the minimum zap level name ("debug", "info", "warn",
	// "error") emitted by the server's logger.
	LogLevel string
}

// Defaults returns the configuration used when no flag, environment
// variable, or config file overrides a setting. The default port, 9000,
// is the protocol's conventional port per the wire interface.
func Defaults() Config {
	return Config{
		Addr:            ":9000",
		NormalTimeout:   1 * time.Second,
		RechargeTimeout: 5 * time.Second,
		LogLevel:        "info",
	}
}

// flagKeys maps each viper config key to the dashed flag name the serve
// command registers it under. viper's keys use underscores throughout
// (matching the ORIGINCTL_ env var names below); BindPFlags alone would
// instead bind each flag under its own dashed name, leaving the
// underscore-keyed defaults/env/file layers unable to ever be overridden
// by the corresponding flag.
var flagKeys = map[string]string{
	"addr":             "addr",
	"normal_timeout":   "normal-timeout",
	"recharge_timeout": "recharge-timeout",
	"log_level":        "log-level",
}

// Load resolves a Config from fs (the serve command's flag set), the
// ORIGINCTL_-prefixed environment, and an optional config file named by
// the "config" flag. Flags take precedence over the environment, which
// takes precedence over the file, which takes precedence over Defaults.
func Load(fs *pflag.FlagSet) (Config, error) {
	def := Defaults()

	v := viper.New()
	v.SetEnvPrefix("ORIGINCTL")
	v.AutomaticEnv()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("normal_timeout", def.NormalTimeout)
	v.SetDefault("recharge_timeout", def.RechargeTimeout)
	v.SetDefault("log_level", def.LogLevel)

	for key, flagName := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return Config{}, errors.Wrapf(err, "config: bind flag %s", flagName)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", path)
		}
	}

	cfg := Config{
		Addr:            v.GetString("addr"),
		NormalTimeout:   v.GetDuration("normal_timeout"),
		RechargeTimeout: v.GetDuration("recharge_timeout"),
		LogLevel:        v.GetString("log_level"),
	}
	if cfg.Addr == "" {
		return Config{}, errors.New("config: addr must not be empty")
	}
	if cfg.NormalTimeout <= 0 || cfg.RechargeTimeout <= 0 {
		return Config{}, errors.New("config: timeouts must be positive")
	}
	return cfg, nil
}
