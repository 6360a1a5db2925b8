package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage quizdb configuration file values.",
	Long: `Create, edit, check, display or delete the quizdb configuration file.
Every subcommand honours --configFile.

The configuration stores application-wide values:
- input.encoding / input.delimiter
- export.dir / export.format
- resolver.question_fallback
- serve.port / serve.allowed_origins / serve.session_ttl / serve.max_upload_mb
- serve.allow_path_load
- log.level`,
	Example: `
  # Create default config in $HOME/.quizdb.yaml
  quizdb config create

  # Show active config and source file
  quizdb config show

  # Open active config in editor (creates example if missing)
  quizdb config edit

  # List invalid keys in the active config
  quizdb config validate

  # Delete active config file
  quizdb config delete --yes
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
