package catalog

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"ualz-service/pkg/response"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}

	return path
}

func strictRows(data [][]interface{}) [][]interface{} {
	rows := [][]interface{}{
		{"UALZ"},
		{"Anno accademico 2025 2026"},
		{},
		{},
		{"Giorno", "Fascia oraria", "Titolo", "Aula", "Ora inizio", "Ora fine", "Data inizio", "Data fine"},
	}
	return append(rows, data...)
}

func TestLoadStrict(t *testing.T) {
	path := writeWorkbook(t, "Foglio1", strictRows([][]interface{}{
		{"Lunedì", "mattina", "Pittura", "Aula 1", "10:00", "12:00", "01/10/2025", "31/05/2026"},
		{"Lunedì", "mattina", "", "Aula 2", "10:00", "12:00", "01/10/2025", "31/05/2026"},
		{"Martedì", "pomeriggio", "Inglese", "Aula 3", "", "16:00", "01/10/2025", "31/05/2026"},
		{"Martedì", "pomeriggio", "Pittura", "Aula 4", "15:00", "17:00", "01/10/2025", "31/05/2026"},
	}))

	loader := NewLoader(discardLogger(), VariantStrict)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Row without a title and row without a start time are dropped.
	if len(records) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(records))
	}

	first := records[0]
	if first.ID != "1" || first.Title != "Pittura" || first.Day != "Lunedì" || first.Room != "Aula 1" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.StartTime == nil || first.StartTime.Format("15:04") != "10:00" {
		t.Errorf("first record start time = %v, want 10:00", first.StartTime)
	}
	if first.StartDate == nil || first.StartDate.Format("02/01/2006") != "01/10/2025" {
		t.Errorf("first record start date = %v, want 01/10/2025", first.StartDate)
	}

	// Duplicate titles get an occurrence suffix on the display title.
	if records[0].DisplayTitle != "Pittura" {
		t.Errorf("first display title = %q, want %q", records[0].DisplayTitle, "Pittura")
	}
	if records[1].DisplayTitle != "Pittura (2)" {
		t.Errorf("second display title = %q, want %q", records[1].DisplayTitle, "Pittura (2)")
	}
}

func TestLoadStrictMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", strictRows(nil))

	loader := NewLoader(discardLogger(), VariantStrict)
	if _, err := loader.Load(path); !errors.Is(err, response.ErrLoad) {
		t.Errorf("Load() error = %v, want ErrLoad", err)
	}
}

func TestLoadPermissive(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"ID", "CourseTitle", "Day", "StartDate", "EndDate", "Teacher", "Aula", "TimeRange"},
		{"101", "Storia dell'arte", "Lunedì", "01/10/2025", "31/05/2026", "Rossi", "Aula Magna", "dalle 10.00 alle 12.00"},
		{"102", "Inglese", "Martedì", "non ancora", "", "Bianchi", "Aula 2", "15.00"},
		{"103", "Yoga", "Mercoledì", "01/10/2025", "31/05/2026", "Verdi", "Palestra", "da definire"},
	})

	loader := NewLoader(discardLogger(), VariantPermissive)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Load() returned %d records, want 3", len(records))
	}

	first := records[0]
	if first.ID != "101" || first.Title != "Storia dell'arte" || first.Teacher != "Rossi" || first.Room != "Aula Magna" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.DisplayTitle != "101 - Storia dell'arte" {
		t.Errorf("first display title = %q", first.DisplayTitle)
	}
	if !first.HasTimes() {
		t.Fatal("first record should have both times from TimeRange")
	}
	if first.StartTime.Format("15:04") != "10:00" || first.EndTime.Format("15:04") != "12:00" {
		t.Errorf("first record times = %s-%s, want 10:00-12:00",
			first.StartTime.Format("15:04"), first.EndTime.Format("15:04"))
	}

	// Partial and unparseable fields become absent, the rows survive.
	second := records[1]
	if second.StartTime == nil || second.StartTime.Format("15:04") != "15:00" {
		t.Errorf("second record start = %v, want 15:00", second.StartTime)
	}
	if second.EndTime != nil {
		t.Errorf("second record end = %v, want absent", second.EndTime)
	}
	if second.StartDate != nil {
		t.Errorf("second record start date = %v, want absent", second.StartDate)
	}

	third := records[2]
	if third.StartTime != nil || third.EndTime != nil {
		t.Errorf("third record times = %v-%v, want both absent", third.StartTime, third.EndTime)
	}
}

func TestLoadPermissiveSeparateTimeColumns(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"ID", "CourseTitle", "Day", "StartTime", "EndTime"},
		{"1", "Scacchi", "Giovedì", "09.30", "11:00"},
	})

	loader := NewLoader(discardLogger(), VariantPermissive)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Load() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if !rec.HasTimes() {
		t.Fatal("record should have both times")
	}
	if rec.StartTime.Format("15:04") != "09:30" || rec.EndTime.Format("15:04") != "11:00" {
		t.Errorf("times = %s-%s, want 09:30-11:00",
			rec.StartTime.Format("15:04"), rec.EndTime.Format("15:04"))
	}
}

func TestLoadPermissiveNumericID(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"ID", "CourseTitle", "Day"},
		{12, "Teatro", "Venerdì"},
	})

	loader := NewLoader(discardLogger(), VariantPermissive)
	records, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "12" {
		t.Errorf("numeric id not canonicalized: %+v", records)
	}
}

func TestLoadPermissiveMissingColumn(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"CourseTitle", "Day"},
		{"Teatro", "Venerdì"},
	})

	loader := NewLoader(discardLogger(), VariantPermissive)
	if _, err := loader.Load(path); !errors.Is(err, response.ErrLoad) {
		t.Errorf("Load() error = %v, want ErrLoad", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(discardLogger(), VariantPermissive)
	if _, err := loader.Load(filepath.Join(t.TempDir(), "nope.xlsx")); !errors.Is(err, response.ErrLoad) {
		t.Errorf("Load() error = %v, want ErrLoad", err)
	}
}

func TestParseVariant(t *testing.T) {
	if _, err := ParseVariant("weird"); err == nil {
		t.Error("ParseVariant(weird) should fail")
	}
	if v, err := ParseVariant(" Strict "); err != nil || v != VariantStrict {
		t.Errorf("ParseVariant(Strict) = %v, %v", v, err)
	}
	if v, err := ParseVariant("permissive"); err != nil || v != VariantPermissive {
		t.Errorf("ParseVariant(permissive) = %v, %v", v, err)
	}
}
