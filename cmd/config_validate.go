package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the active config file and list invalid keys.",
	Example: `
  quizdb config validate
  quizdb --configFile ./quiz.yaml config validate
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTarget(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		cfg, err := checkConfigFile(path)
		if err != nil {
			reportConfigProblems(cmd.ErrOrStderr(), path, err)
			return fmt.Errorf("config %s is invalid", path)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (export.format=%s, resolver.question_fallback=%s)\n",
			path, cfg.Export.Format, cfg.Resolver.QuestionFallback)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
