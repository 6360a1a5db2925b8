package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configCreateForce bool
	configCreateLocal bool
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write the example quizdb configuration.",
	Long: `Write the example configuration (input encoding and delimiter, export
format, question fallback, web server settings) to the config file.

Target: --configFile if given, else ./.quizdb.yaml with --local, else the file
already in use, else $HOME/.quizdb.yaml. An existing file is kept unless
--force is set.`,
	Example: `
  # Create $HOME/.quizdb.yaml
  quizdb config create

  # Create a project-local config next to the quiz sheets
  quizdb config create --local

  # Reset a custom config file to the template
  quizdb --configFile ./quiz.yaml config create --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		used := viper.ConfigFileUsed()
		if configCreateLocal {
			used = defaultConfigName
		}
		path, err := configTarget(cfgFile, used)
		if err != nil {
			return err
		}

		written, err := writeConfigTemplate(path, configCreateForce)
		if err != nil {
			return err
		}
		if !written {
			fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at: %s (use --force to overwrite)\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "New config file created at: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateForce, "force", false, "Overwrite an existing config file")
	configCreateCmd.Flags().BoolVar(&configCreateLocal, "local", false, "Write ./.quizdb.yaml instead of the home config")
}
