//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for warehouse-etl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sparkify/warehouse-etl/internal/config"
	"github.com/sparkify/warehouse-etl/internal/logging"
	"github.com/sparkify/warehouse-etl/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "warehouse-etl",
		Short: "Batch ETL pipeline for the Sparkify music warehouse",
		Long: `warehouse-etl loads Sparkify activity logs and song metadata from
object storage into warehouse staging tables, reshapes them into a star
schema (songplays fact plus user, song, artist, and time dimensions), and
runs a fixed set of reporting queries.

Every run is a full refresh: 'reset' drops and recreates all tables, and
'run' loads, transforms, and reports in one strictly sequential pass.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./warehouse-etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"warehouse connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seedCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
