package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/hogpd/pkg/config"
)

// defaultCLIConfig returns a config for short-lived commands: warnings
// only unless --log-level raises it.
func defaultCLIConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "warn"
	return cfg
}

// configureLogger creates a logger from the config, with the --log-level
// flag taking precedence over the configured level.
func configureLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		cfg.LogLevel = flagLevel
	}
	return cfg.NewLogger()
}
