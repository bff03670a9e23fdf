//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for warehouse-etl.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateFormat is the calendar-date layout used for the analytics window.
const DateFormat = "2006-01-02"

// Config holds all configuration for warehouse-etl.
type Config struct {
	// Connection is the warehouse connection string (postgres:// URI).
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the staging bulk loads.
	Load LoadConfig `mapstructure:"load"`

	// Analytics holds configuration for the reporting queries.
	Analytics AnalyticsConfig `mapstructure:"analytics"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// LoadConfig holds parameters for the two staging COPY statements.
type LoadConfig struct {
	// EventsURI is the object-storage location of the activity log files.
	EventsURI string `mapstructure:"events_uri"`

	// SongsURI is the object-storage location of the song metadata files.
	SongsURI string `mapstructure:"songs_uri"`

	// JSONPathsURI is the JSON-paths descriptor used to map event fields.
	JSONPathsURI string `mapstructure:"jsonpaths_uri"`

	// IAMRole is the role ARN the warehouse assumes to read the sources.
	IAMRole string `mapstructure:"iam_role"`

	// Region is the region of the source buckets.
	Region string `mapstructure:"region"`
}

// AnalyticsConfig holds the reporting date window. Both bounds are
// inclusive calendar dates in DateFormat.
type AnalyticsConfig struct {
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

// SeedConfig holds parameters for synthetic staging data generation.
type SeedConfig struct {
	// Songs is the number of song metadata rows to generate.
	Songs int `mapstructure:"songs"`

	// Events is the number of activity log rows to generate.
	Events int `mapstructure:"events"`

	// RandomSeed fixes the generator seed for reproducible data (0 = random).
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// DefaultConfig returns a Config with default values. The analytics window
// defaults to the month of log data the Sparkify dataset covers.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Load: LoadConfig{
			Region: "us-west-2",
		},
		Analytics: AnalyticsConfig{
			StartDate: "2018-11-01",
			EndDate:   "2018-11-30",
		},
		Seed: SeedConfig{
			Songs:  200,
			Events: 2000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./warehouse-etl.yaml
// 3. ~/.config/warehouse-etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("warehouse-etl")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "warehouse-etl"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the staging bulk loads.
func (c *Config) ValidateLoad() error {
	if c.Load.EventsURI == "" {
		return fmt.Errorf("load.events_uri is required")
	}
	if c.Load.SongsURI == "" {
		return fmt.Errorf("load.songs_uri is required")
	}
	if c.Load.JSONPathsURI == "" {
		return fmt.Errorf("load.jsonpaths_uri is required")
	}
	if c.Load.IAMRole == "" {
		return fmt.Errorf("load.iam_role is required")
	}
	if c.Load.Region == "" {
		return fmt.Errorf("load.region is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.ValidateLoad(); err != nil {
		return err
	}
	if _, _, err := c.Analytics.Window(); err != nil {
		return err
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Songs < 1 {
		return fmt.Errorf("seed.songs must be at least 1")
	}
	if c.Seed.Events < 1 {
		return fmt.Errorf("seed.events must be at least 1")
	}
	return nil
}

// Window parses the analytics date window. The end date must not precede
// the start date.
func (a AnalyticsConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(DateFormat, a.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid analytics.start_date: %w", err)
	}
	end, err := time.Parse(DateFormat, a.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid analytics.end_date: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf(
			"analytics.end_date %s precedes analytics.start_date %s",
			a.EndDate, a.StartDate)
	}
	return start, end, nil
}
