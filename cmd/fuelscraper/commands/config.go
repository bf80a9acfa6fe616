package commands

import (
	"errors"
	"fmt"
	"fuelscraper/internal/components/telemetry"
	"fuelscraper/internal/scrapers/gasbuddy"
	"fuelscraper/pkg/configutil"
	"log/slog"
	"time"
)

type Config struct {
	BaseUrl        string `json:"base_url" yaml:"base_url"`
	UserAgent      string `json:"user_agent" yaml:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	InitialCursor  string `json:"initial_cursor" yaml:"initial_cursor"`
	Verbose        bool   `json:"verbose" yaml:"verbose"`
	// Db is the history database, acquisitions are not recorded when empty.
	Db string `json:"db" yaml:"db"`
	// DumpHttp is a directory every http exchange is written to, nothing is
	// written when empty.
	DumpHttp string `json:"dump_http" yaml:"dump_http"`
}

// a missing config file is not an error, every field has a default
func loadConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, configutil.ErrNotFound) {
		slog.Debug("no config file, using defaults", "path", path)
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return config, nil
}

func (c Config) scraperOptions() (gasbuddy.Options, error) {
	opts := gasbuddy.Options{
		BaseUrl:       c.BaseUrl,
		UserAgent:     c.UserAgent,
		Timeout:       time.Duration(c.TimeoutSeconds) * time.Second,
		InitialCursor: c.InitialCursor,
	}
	if c.DumpHttp != "" {
		dump, err := telemetry.NewDirectoryDump(c.DumpHttp)
		if err != nil {
			return gasbuddy.Options{}, fmt.Errorf("http dump: %w", err)
		}
		opts.Dump = dump
	}
	return opts, nil
}
