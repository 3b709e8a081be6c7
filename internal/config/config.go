// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package config loads server configuration from an optional YAML file
// with flag overrides on top of built-in defaults.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

// Config holds every tunable of the server: storage, cache TTL, and the
// sign/message templates.
type Config struct {
	DatabaseURL string `koanf:"database-url" yaml:"database-url"`

	// QueryTimeoutSeconds bounds each storage statement.
	QueryTimeoutSeconds int `koanf:"query-timeout" yaml:"query-timeout"`
	// CacheExpireSeconds is the sign cache TTL.
	CacheExpireSeconds int `koanf:"cache-expire-seconds" yaml:"cache-expire-seconds"`

	MetricsAddr    string `koanf:"metrics-addr" yaml:"metrics-addr"`
	LogFormat      string `koanf:"log-format" yaml:"log-format"`
	CurrencySymbol string `koanf:"currency-symbol" yaml:"currency-symbol"`

	SignLine1Prefix string `koanf:"sign-line1-prefix" yaml:"sign-line1-prefix"`
	SignLine2Prefix string `koanf:"sign-line2-prefix" yaml:"sign-line2-prefix"`
	SignLine3       string `koanf:"sign-line3" yaml:"sign-line3"`

	MsgAlreadyRegistered string `koanf:"msg-already-registered" yaml:"msg-already-registered"`
	MsgInsufficientFunds string `koanf:"msg-insufficient-funds" yaml:"msg-insufficient-funds"`
	MsgNotFoundChest1    string `koanf:"not-found-chest1" yaml:"not-found-chest1"`
	MsgNotFoundChest2    string `koanf:"not-found-chest2" yaml:"not-found-chest2"`
	MsgNotFoundPick      string `koanf:"not-found-pick" yaml:"not-found-pick"`
	MsgFoundPick         string `koanf:"found-pick" yaml:"found-pick"`
	MsgBindPrompt        string `koanf:"msg-bind-prompt" yaml:"msg-bind-prompt"`
	MsgBindUpdated       string `koanf:"msg-bind-updated" yaml:"msg-bind-updated"`
	MsgDeleted           string `koanf:"msg-deleted" yaml:"msg-deleted"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		QueryTimeoutSeconds: 5,
		CacheExpireSeconds:  60,
		MetricsAddr:         "127.0.0.1:9100",
		LogFormat:           "json",
		CurrencySymbol:      "G",
		SignLine1Prefix:     "[Gacha] ",
		SignLine2Prefix:     "name: ",
		SignLine3:           "Right click to draw!",

		MsgAlreadyRegistered: "It is already registered. To continue, please delete first.",
		MsgInsufficientFunds: "You do not have enough money.",
		MsgNotFoundChest1:    "No reward container is configured for this draw-point.",
		MsgNotFoundChest2:    "Ask an administrator to bind a container.",
		MsgNotFoundPick:      "Nothing found this time. Better luck next draw!",
		MsgFoundPick:         "You won a prize!",
		MsgBindPrompt:        "Please punch (right click) the reward container.",
		MsgBindUpdated:       "Updated.",
		MsgDeleted:           "Deleted.",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path when it exists, then flag overrides. A missing file is not an error
// when path is empty; an explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, oops.With("path", path).Wrap(err)
		}
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return cfg, oops.With("operation", "load flag overrides").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, oops.With("operation", "unmarshal config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.QueryTimeoutSeconds < 0 {
		return oops.With("query-timeout", c.QueryTimeoutSeconds).Errorf("query-timeout cannot be negative")
	}
	if c.CacheExpireSeconds <= 0 {
		return oops.With("cache-expire-seconds", c.CacheExpireSeconds).Errorf("cache-expire-seconds must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.With("log-format", c.LogFormat).Errorf("log-format must be 'json' or 'text'")
	}
	return nil
}

// QueryTimeout returns the per-statement storage timeout.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns the sign cache time-to-live.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheExpireSeconds) * time.Second
}

// SignFormat returns the marker line templates.
func (c *Config) SignFormat() gacha.SignFormat {
	return gacha.SignFormat{
		Line1Prefix: c.SignLine1Prefix,
		Line2Prefix: c.SignLine2Prefix,
		Line3:       c.SignLine3,
	}
}

// Messages returns the actor-facing message templates.
func (c *Config) Messages() gacha.Messages {
	return gacha.Messages{
		AlreadyRegistered: c.MsgAlreadyRegistered,
		InsufficientFunds: c.MsgInsufficientFunds,
		NotFoundChest1:    c.MsgNotFoundChest1,
		NotFoundChest2:    c.MsgNotFoundChest2,
		NotFoundPick:      c.MsgNotFoundPick,
		FoundPick:         c.MsgFoundPick,
		BindPrompt:        c.MsgBindPrompt,
		BindUpdated:       c.MsgBindUpdated,
		Deleted:           c.MsgDeleted,
	}
}

// WriteDefault renders the default configuration as YAML to path.
// Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return oops.With("path", path).Errorf("config file already exists")
	}
	cfg := Default()
	data, err := yamlv3.Marshal(&cfg)
	if err != nil {
		return oops.With("operation", "marshal default config").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oops.With("path", path).Wrap(err)
	}
	return nil
}
