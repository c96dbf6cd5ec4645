package catalog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ualz-service/internal/models"
	"ualz-service/pkg/response"
	"ualz-service/pkg/sl"
)

// Variant selects which of the two historically distinct catalog
// layouts the loader expects. The behaviors are deliberately kept
// separate: the strict layout drops incomplete rows outright, the
// permissive one tolerates absent times and dates.
type Variant string

const (
	// VariantStrict reads the fixed-position sheet "Foglio1": a four
	// row banner, one header row, then data in the column order
	// Day, TimeSlotLabel, Title, Room, StartTime, EndTime, StartDate,
	// EndDate. Rows without a title, start time or end time are
	// dropped. The sheet has no ID column, so ids are synthesized
	// from row order and duplicate titles get an occurrence suffix.
	VariantStrict Variant = "strict"

	// VariantPermissive reads a header-driven sheet with named
	// columns ID, CourseTitle, Day, StartDate, EndDate, Teacher,
	// Aula and either StartTime/EndTime or a combined TimeRange.
	// Unparseable times and dates become absent fields.
	VariantPermissive Variant = "permissive"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantStrict:
		return VariantStrict, nil
	case VariantPermissive:
		return VariantPermissive, nil
	default:
		return "", fmt.Errorf("unknown catalog variant: %q", s)
	}
}

const (
	strictSheet     = "Foglio1"
	strictHeaderRow = 5 // 1-based; four banner rows plus the header itself
)

type Loader struct {
	log     *slog.Logger
	variant Variant
}

func NewLoader(log *slog.Logger, variant Variant) *Loader {
	return &Loader{log: log, variant: variant}
}

func (l *Loader) Variant() Variant {
	return l.variant
}

// Load reads the workbook at path into a normalized catalog. File and
// column level problems return an error wrapping response.ErrLoad;
// per-field parse failures only downgrade the field to absent.
func (l *Loader) Load(path string) ([]models.CourseRecord, error) {
	const op = "catalog.Loader.Load"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, response.ErrLoad, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.log.Warn("Failed to close workbook", sl.Err(cerr))
		}
	}()

	switch l.variant {
	case VariantStrict:
		return l.loadStrict(f)
	default:
		return l.loadPermissive(f)
	}
}

func (l *Loader) loadStrict(f *excelize.File) ([]models.CourseRecord, error) {
	const op = "catalog.Loader.loadStrict"

	rows, err := f.GetRows(strictSheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: sheet %q: %v", op, response.ErrLoad, strictSheet, err)
	}
	if len(rows) <= strictHeaderRow {
		return nil, fmt.Errorf("%s: %w: sheet %q has no data rows", op, response.ErrLoad, strictSheet)
	}

	var records []models.CourseRecord
	for i, row := range rows[strictHeaderRow:] {
		title := strings.TrimSpace(cell(row, 2))
		startTime := ParseClock(cell(row, 4))
		endTime := ParseClock(cell(row, 5))

		if title == "" || startTime == nil || endTime == nil {
			l.log.Debug("Dropping incomplete row", slog.Int("row", strictHeaderRow+i+1))
			continue
		}

		records = append(records, models.CourseRecord{
			ID:        strconv.Itoa(len(records) + 1),
			Title:     title,
			Day:       strings.TrimSpace(cell(row, 0)),
			Room:      strings.TrimSpace(cell(row, 3)),
			StartTime: startTime,
			EndTime:   endTime,
			StartDate: ParseDate(cell(row, 6)),
			EndDate:   ParseDate(cell(row, 7)),
		})
	}

	labels := DisambiguateTitles(records)
	for i := range records {
		records[i].DisplayTitle = labels[records[i].ID]
	}

	return records, nil
}

func (l *Loader) loadPermissive(f *excelize.File) ([]models.CourseRecord, error) {
	const op = "catalog.Loader.loadPermissive"

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w: workbook has no sheets", op, response.ErrLoad)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w: sheet %q: %v", op, response.ErrLoad, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: sheet %q is empty", op, response.ErrLoad, sheets[0])
	}

	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"ID", "CourseTitle", "Day"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: %w: missing required column %q", op, response.ErrLoad, required)
		}
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(cell(row, i))
	}

	_, hasStart := col["StartTime"]
	_, hasEnd := col["EndTime"]
	_, hasRange := col["TimeRange"]
	splitRange := hasRange && (!hasStart || !hasEnd)

	var records []models.CourseRecord
	for i, row := range rows[1:] {
		id := normalizeID(get(row, "ID"))
		title := get(row, "CourseTitle")
		if id == "" && title == "" {
			continue
		}

		startRaw := get(row, "StartTime")
		endRaw := get(row, "EndTime")
		if splitRange {
			startRaw, endRaw = SplitTimeRange(get(row, "TimeRange"))
		}

		rec := models.CourseRecord{
			ID:           id,
			Title:        title,
			DisplayTitle: id + " - " + title,
			Day:          get(row, "Day"),
			Teacher:      get(row, "Teacher"),
			Room:         get(row, "Aula"),
			StartTime:    ParseClock(startRaw),
			EndTime:      ParseClock(endRaw),
			StartDate:    ParseDate(get(row, "StartDate")),
			EndDate:      ParseDate(get(row, "EndDate")),
		}

		if rec.StartTime == nil && startRaw != "" {
			l.log.Warn("Unparseable start time, treating as absent",
				slog.Int("row", i+2), slog.String("value", startRaw))
		}
		if rec.EndTime == nil && endRaw != "" {
			l.log.Warn("Unparseable end time, treating as absent",
				slog.Int("row", i+2), slog.String("value", endRaw))
		}
		if rec.StartDate == nil && get(row, "StartDate") != "" {
			l.log.Warn("Unparseable start date, treating as absent",
				slog.Int("row", i+2), slog.String("value", get(row, "StartDate")))
		}
		if rec.EndDate == nil && get(row, "EndDate") != "" {
			l.log.Warn("Unparseable end date, treating as absent",
				slog.Int("row", i+2), slog.String("value", get(row, "EndDate")))
		}

		records = append(records, rec)
	}

	return records, nil
}

// cell returns the i-th cell of a row; GetRows truncates trailing
// empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// normalizeID canonicalizes an ID cell to a plain string. Numeric ids
// read from Excel may surface as floats ("12.0").
func normalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
