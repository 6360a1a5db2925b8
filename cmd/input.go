package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"quizdb/config"
	"quizdb/importer"
	"quizdb/quiz"
)

var (
	inputPath      string
	inputFormat    string
	inputEncoding  string
	inputDelimiter string
)

// loadedInput is a quiz sheet read from --input together with the resolver
// configured for it.
type loadedInput struct {
	cfg      *config.Config
	resolver quiz.Resolver
	result   *importer.Result
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Quiz sheet to load (.csv, .txt, .xlsx, .xlsm)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: "+strings.Join(importer.SupportedFormats(), "|")+" (optional, inferred from extension)")
	cmd.Flags().StringVar(&inputEncoding, "encoding", "", "CSV encoding: utf-8|shift_jis (default from config input.encoding)")
	cmd.Flags().StringVar(&inputDelimiter, "delimiter", "", "CSV delimiter, \\t for tab (default from config input.delimiter)")
	_ = cmd.MarkFlagRequired("input")
}

func loadInput() (*loadedInput, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	resolver, err := resolverFromConfig(cfg.Resolver)
	if err != nil {
		return nil, err
	}
	options, err := importOptions(cfg.Input, inputFormat, inputEncoding, inputDelimiter)
	if err != nil {
		return nil, err
	}

	result, err := importer.LoadFile(inputPath, options)
	if err != nil {
		return nil, err
	}
	slog.Debug("quiz data loaded", "source", result.SourceName, "format", result.Format, "rows", result.RowsRead)

	return &loadedInput{cfg: cfg, resolver: resolver, result: result}, nil
}

func resolverFromConfig(cfg config.ResolverConfig) (quiz.Resolver, error) {
	mode, err := quiz.ParseFallbackMode(cfg.QuestionFallback)
	if err != nil {
		return quiz.Resolver{}, err
	}
	return quiz.Resolver{Fallback: mode}, nil
}

// importOptions merges command-line overrides onto the configured input
// settings.
func importOptions(cfg config.InputConfig, format, encoding, delimiter string) (importer.Options, error) {
	if strings.TrimSpace(encoding) != "" {
		cfg.Encoding = encoding
	}
	if delimiter != "" {
		cfg.Delimiter = delimiter
	}
	if cfg.Delimiter != `\t` && len([]rune(cfg.Delimiter)) != 1 {
		return importer.Options{}, fmt.Errorf("invalid delimiter %q: must be a single character", cfg.Delimiter)
	}
	return importer.Options{
		Format:    format,
		Encoding:  cfg.Encoding,
		Delimiter: cfg.DelimiterRune(),
	}, nil
}

// queryFromArgs joins positional search terms back into the query string used
// for export file names.
func queryFromArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
