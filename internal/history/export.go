package history

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ytget/yt-snippet/internal/model"
)

// ExportSheet is the worksheet name of exported workbooks
const ExportSheet = "History"

// ExportXLSX renders records as an XLSX workbook. link builds the download
// reference for a job id and may be nil.
func ExportXLSX(records []model.HistoryRecord, link func(jobID string) string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(ExportSheet); index == -1 {
		if _, err := f.NewSheet(ExportSheet); err != nil {
			return nil, err
		}
	}
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(ExportSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Time", "Title", "Format", "Filename", "Job ID", "Download"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ExportSheet, cell, h)
	}

	for i, r := range records {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(ExportSheet, cell, v)
		}
		write(1, r.Timestamp)
		write(2, r.Title)
		write(3, string(r.Format))
		write(4, r.Filename)
		write(5, r.ID)
		if link != nil {
			write(6, link(r.ID))
		}
	}

	_ = f.SetColWidth(ExportSheet, "A", "A", 14)
	_ = f.SetColWidth(ExportSheet, "B", "B", 48)
	_ = f.SetColWidth(ExportSheet, "C", "C", 8)
	_ = f.SetColWidth(ExportSheet, "D", "E", 24)
	_ = f.SetColWidth(ExportSheet, "F", "F", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
