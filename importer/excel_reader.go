package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"quizdb/quiz"
)

// ExcelReader reads the first sheet of a workbook; row 1 holds the headers.
type ExcelReader struct{}

func (r *ExcelReader) Read(src io.Reader) (quiz.Table, error) {
	file, err := excelize.OpenReader(src)
	if err != nil {
		return quiz.Table{}, fmt.Errorf("open excel workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return quiz.Table{}, fmt.Errorf("excel workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return quiz.Table{}, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return quiz.Table{}, fmt.Errorf("sheet %s is empty", sheetName)
	}

	return tableFromRows(rows[0], rows[1:]), nil
}
