package history

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ytget/yt-snippet/internal/model"
)

func TestExportXLSX(t *testing.T) {
	records := []model.HistoryRecord{
		{ID: "job-2", Title: "Evening Service", Format: model.FormatWAV, Filename: "evening", Timestamp: "8:15:00 PM"},
		{ID: "job-1", Title: "Morning Service", Format: model.FormatMP3, Timestamp: "9:00:00 AM"},
	}

	data, err := ExportXLSX(records, func(id string) string { return "https://api.example.com/download/" + id })
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Title" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][1] != "Evening Service" || rows[1][2] != "wav" || rows[1][5] != "https://api.example.com/download/job-2" {
		t.Errorf("unexpected first data row %v", rows[1])
	}
}

func TestExportXLSX_Empty(t *testing.T) {
	data, err := ExportXLSX(nil, nil)
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected a workbook even without records")
	}
}
