package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"quizdb/config"
)

const defaultConfigName = ".quizdb.yaml"

// configTarget is the file the config subcommands work on: --configFile, then
// the file viper loaded, then $HOME/.quizdb.yaml.
func configTarget(flagValue, used string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	if strings.TrimSpace(used) != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeConfigTemplate writes the example configuration to path. An existing
// file is only replaced when force is set; the result reports whether a file
// was written.
func writeConfigTemplate(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("check config file %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write config template %s: %w", path, err)
	}
	return true, nil
}

func checkConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return config.ValidateYAMLContent(content)
}

// editConfigFile lets edit change a draft copy of path. The draft replaces
// path only when it validates; otherwise it is kept next to path and the
// returned error names it.
func editConfigFile(path string, edit func(draftPath string) error) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	draft, err := os.CreateTemp(filepath.Dir(path), ".quizdb-edit-*.yaml")
	if err != nil {
		return fmt.Errorf("create config draft: %w", err)
	}
	draftPath := draft.Name()
	if _, err := draft.Write(original); err != nil {
		_ = draft.Close()
		_ = os.Remove(draftPath)
		return fmt.Errorf("write config draft: %w", err)
	}
	if err := draft.Close(); err != nil {
		_ = os.Remove(draftPath)
		return fmt.Errorf("close config draft: %w", err)
	}

	if err := edit(draftPath); err != nil {
		_ = os.Remove(draftPath)
		return err
	}

	if _, err := checkConfigFile(draftPath); err != nil {
		return fmt.Errorf("edits kept in %s: %w", draftPath, err)
	}
	if err := os.Rename(draftPath, path); err != nil {
		return fmt.Errorf("replace config file %s: %w", path, err)
	}
	return nil
}

// editorCommand picks $VISUAL, then $EDITOR, then vi, keeping any arguments
// the variable carries.
func editorCommand(getenv func(string) string) []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

func runEditor(argv []string, path string) error {
	command := exec.Command(argv[0], append(argv[1:], path)...)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", argv[0], err)
	}
	return nil
}

// reportConfigProblems prints one line per failing key when err carries them.
func reportConfigProblems(w io.Writer, path string, err error) {
	var validationErr *config.ValidationError
	if !errors.As(err, &validationErr) {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(w, "%s has %d invalid key(s):\n", path, len(validationErr.Problems))
	for _, problem := range validationErr.Problems {
		fmt.Fprintf(w, "  - %s\n", problem)
	}
}
