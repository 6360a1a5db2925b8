package output

import (
	"bufio"
	"fmt"
	"io"

	"quizdb/quiz"
)

// TextWriter concatenates one text block per row, in table order.
type TextWriter struct {
	Resolver quiz.Resolver
}

func (w *TextWriter) Extension() string {
	return "txt"
}

func (w *TextWriter) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (w *TextWriter) Write(dst io.Writer, table quiz.Table) error {
	buffered := bufio.NewWriter(dst)
	for i := range table.Rows {
		if _, err := buffered.WriteString(w.Resolver.BuildTextBlock(table.Row(i)) + "\n"); err != nil {
			return fmt.Errorf("write text block %d: %w", i+1, err)
		}
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush text output: %w", err)
	}
	return nil
}
