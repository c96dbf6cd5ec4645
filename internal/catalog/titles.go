package catalog

import (
	"fmt"

	"ualz-service/internal/models"
)

// DisambiguateTitles maps every record id to a selection label that is
// unique across the catalog. The first occurrence of a title keeps it
// as is; later occurrences get an occurrence counter suffix, so
// "Pittura", "Pittura (2)", "Pittura (3)". Catalogs with a stable ID
// column do not need this, but the mapping stays valid for them too.
func DisambiguateTitles(records []models.CourseRecord) map[string]string {
	counts := make(map[string]int, len(records))
	labels := make(map[string]string, len(records))

	for _, rec := range records {
		counts[rec.Title]++
		if counts[rec.Title] == 1 {
			labels[rec.ID] = rec.Title
		} else {
			labels[rec.ID] = fmt.Sprintf("%s (%d)", rec.Title, counts[rec.Title])
		}
	}

	return labels
}
