package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"quizdb/quiz"
)

// ExcelWriter writes the same header and rows as CSVWriter into one sheet.
type ExcelWriter struct{}

func (w *ExcelWriter) Extension() string {
	return "xlsx"
}

func (w *ExcelWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *ExcelWriter) Write(dst io.Writer, table quiz.Table) error {
	table = quiz.EnsureOutputColumns(table)

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellStr(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i := range table.Rows {
		for col, value := range table.Row(i).Cells() {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if _, err := file.WriteTo(dst); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}

	return nil
}
