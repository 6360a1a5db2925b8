package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active config and validate it before saving.",
	Long: `Open a draft copy of the active quizdb config in $VISUAL, $EDITOR or vi.

When the editor exits, the draft is checked (input.encoding, input.delimiter,
export.format, resolver.question_fallback, serve.*, log.level). A valid draft
replaces the config file. An invalid draft is kept next to it, and every failing
key is listed. A missing config file is created from the template first.`,
	Example: `
  quizdb config edit

  # Edit a specific file with a different editor
  EDITOR="code --wait" quizdb --configFile ./quiz.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTarget(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if created, err := writeConfigTemplate(path, false); err != nil {
			return err
		} else if created {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file found. Created example config at: %s\n", path)
		}

		argv := editorCommand(os.Getenv)
		err = editConfigFile(path, func(draftPath string) error {
			return runEditor(argv, draftPath)
		})
		if err != nil {
			reportConfigProblems(cmd.ErrOrStderr(), path, err)
			return fmt.Errorf("config %s not changed", path)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved and validated: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
