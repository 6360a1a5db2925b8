package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the config file selected by --configFile or found by discovery.
Requires --yes. Afterwards quizdb runs on built-in defaults.`,
	Example: `
  quizdb config delete --yes
  quizdb --configFile ./quiz.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTarget(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if err := deleteConfigFile(path, configDeleteYes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file deleted: %s\n", path)
		return nil
	},
}

func deleteConfigFile(path string, confirmed bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no configuration file at %s", path)
	}
	if !confirmed {
		return fmt.Errorf("refusing to delete %s without --yes", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete configuration file %s: %w", path, err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVar(&configDeleteYes, "yes", false, "Confirm deletion")
}
