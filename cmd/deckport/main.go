// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deckport CLI. Each pipeline is
// a subcommand: video renders .ppsm decks to MP4, pdf exports them to
// sanitized PDFs, history queries the export journal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deckport/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deckport CLI.
var rootCmd = &cobra.Command{
	Use:   "deckport",
	Short: "Batch-convert presentation decks to video and PDF",
	Long: `deckport drives the desktop presentation application through its
automation interface to convert folders of macro-enabled decks (.ppsm)
into MP4 videos and PDFs. The PDF pipeline removes webcam/cameo overlay
shapes from slides, masters, and layouts before export.

Each deliverable is a subcommand: video and pdf run a batch, history
shows journaled outcomes of past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deckport.yaml or ~/.config/deckport/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deckport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deckport"))
		}
	}

	viper.SetEnvPrefix("DECKPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the built-in defaults. Config
// structs carry yaml tags, so the decoder matches on those.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
