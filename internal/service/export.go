package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"ualz-service/api"
)

// Export column headers, in the order of the original result table.
var exportHeader = []string{
	"Titolo", "ID", "Inizio", "Fine", "Dal", "Al", "Docenti", "Sede/Aula",
}

// ExportConflictsXLSX serializes the conflict list for the given
// course as an Excel workbook. Returns the file content and a
// suggested filename.
func (s *Service) ExportConflictsXLSX(ctx context.Context, id string) (*bytes.Buffer, string, error) {
	const op = "service.ExportConflictsXLSX"

	result, err := s.FindConflicts(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sovrapposizioni"
	f.SetSheetName("Sheet1", sheet)

	headerRow := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	for i, c := range result.Conflicts {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
		row := exportRow(c)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return buf, fmt.Sprintf("sovrapposizioni_corso_%s.xlsx", id), nil
}

// ExportConflictsCSV serializes the conflict list as delimited text.
func (s *Service) ExportConflictsCSV(ctx context.Context, id string) (*bytes.Buffer, string, error) {
	const op = "service.ExportConflictsCSV"

	result, err := s.FindConflicts(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	for _, c := range result.Conflicts {
		if err := w.Write(exportRow(c)); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return &buf, fmt.Sprintf("sovrapposizioni_corso_%s.csv", id), nil
}

func exportRow(c api.CourseResponse) []string {
	return []string{
		c.Title,
		c.ID,
		c.StartTime,
		c.EndTime,
		c.StartDate,
		c.EndDate,
		c.Teacher,
		c.Room,
	}
}
