package normalize

import (
	"strings"

	"fleet_status/internal/models"
)

var statusVocabulary = map[string]models.Status{
	"yes":       models.Active,
	"1":         models.Active,
	"true":      models.Active,
	"active":    models.Active,
	"ใช้งาน":    models.Active,
	"ใช้งานได้": models.Active,
	"no":        models.Inactive,
	"0":         models.Inactive,
	"false":     models.Inactive,
	"inactive":  models.Inactive,
	"ไม่ใช้งาน": models.Inactive,
}

// ParseStatus maps status text to a Status. Unknown text yields Active with
// recognized set to false; blank text is read as Active.
func ParseStatus(raw string) (status models.Status, recognized bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return models.Active, true
	}
	if st, ok := statusVocabulary[s]; ok {
		return st, true
	}
	return models.Active, false
}
