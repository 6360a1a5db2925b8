/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"quizdb/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quizdb",
	Short: "Search, browse, and export Japanese quiz question sheets.",
	Long: `
**********************************************
*                 QUIZ DB                    *
**********************************************

This CLI loads a quiz sheet (CSV or Excel), maps its column headers onto the
canonical fields 問題文, 選択肢1-5, 正解 and 科目分類, and lets you search,
browse, and export the questions. Loaded data is never persisted.

Supported input formats:
- CSV: .csv, .txt (UTF-8 with or without BOM, or Shift_JIS)
- Excel: .xlsx, .xlsm
`,
	Example: `
  # Create configuration file
  quizdb config create

  # Search for questions containing both terms
  quizdb search -i questions.csv ネットワーク TCP

  # Show the third hit of a search
  quizdb show -i questions.csv --record 3 TCP

  # Export hits as a BOM-prefixed CSV into ./out
  quizdb export -i questions.csv --format csv --output-dir ./out TCP

  # List normalized columns
  quizdb columns -i questions.csv

  # Start the local web UI
  quizdb serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.quizdb.yaml, then ./.quizdb.yaml)")

	// Validate configuration and set up logging before data commands run.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		setupLogger(cfg.Log)
		return nil
	}
}

// requiresConfig is false for the config subcommands, which must work with a
// missing or broken config file.
func requiresConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return false
		}
	}
	return cmd != nil && cmd != rootCmd
}

func setupLogger(cfg config.LogConfig) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".quizdb" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quizdb")
	}

	// QUIZDB_EXPORT_FORMAT overrides export.format, and so on.
	viper.SetEnvPrefix("quizdb")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: quizdb config create")
	}
}
