// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the researcher-agent CLI, a multi-agent
// research pipeline over the Gemini API: plan, findings, report, critique.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/researcher-agent/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the loaded secret
// for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the researcher-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "researcher-agent",
	Short: "Multi-agent topic research over the Gemini API",
	Long: `researcher-agent turns a topic into a research plan, a findings summary,
a long-form report, and a critique, by sequencing four prompt-driven agents
against the Gemini API.

The stages run strictly in order within a single run; a failure at any stage
stops the run and keeps the results of the stages that already completed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./researcher-agent.yaml or ~/.config/researcher-agent/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("researcher-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "researcher-agent"))
		}
	}

	viper.SetEnvPrefix("RESEARCHER_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
