package planning

import (
	"math"
	"strings"

	"fleet_status/internal/models"
)

// AlertStatus grades how close a tail is to its next check.
type AlertStatus string

const (
	AlertUnknown  AlertStatus = "unknown"
	AlertOK       AlertStatus = "ok"
	AlertWarning  AlertStatus = "warning"
	AlertCritical AlertStatus = "critical"
)

const (
	warningPercent  = 80
	criticalPercent = 95
)

// Alert is the check-interval usage of one tail.
type Alert struct {
	Tail      string      `json:"tail"`
	Name      string      `json:"name"`
	MaxHours  float64     `json:"max_hours"`
	Remaining *float64    `json:"remaining,omitempty"`
	Percent   int         `json:"percent"`
	Status    AlertStatus `json:"status"`
}

// MaxCheckHours is the check interval the usage bar is measured against.
func MaxCheckHours(rec *models.AircraftRecord) float64 {
	if rec.IsHelicopter() {
		for _, b := range models.Buckets {
			if rec.RemainingBuckets[b] != nil {
				return float64(b)
			}
		}
		return models.Bucket300
	}
	name := strings.ToUpper(rec.DisplayName)
	switch {
	case strings.Contains(name, "CARAVAN"):
		return 100
	case strings.Contains(name, "CN-235"), strings.Contains(name, "CN235"),
		strings.Contains(name, "SKA-350"), strings.Contains(name, "SKA350"):
		return 200
	default:
		return 150
	}
}

func checkBalance(rec *models.AircraftRecord) *float64 {
	if rec.IsHelicopter() {
		for _, b := range models.Buckets {
			if v := rec.RemainingBuckets[b]; v != nil {
				return v
			}
		}
		return nil
	}
	if rec.CheckDueHours != nil && rec.FlightHours != nil {
		v := *rec.CheckDueHours - *rec.FlightHours
		return &v
	}
	return rec.RemainingCheckHours
}

// CheckAlert grades a record's usage of its check interval.
func CheckAlert(rec *models.AircraftRecord) Alert {
	limit := MaxCheckHours(rec)
	alert := Alert{Tail: rec.TailNumber, Name: rec.DisplayName, MaxHours: limit, Status: AlertUnknown}

	remaining := checkBalance(rec)
	if remaining == nil {
		return alert
	}
	pct := math.Max(0, math.Min(100, (limit-*remaining)/limit*100))
	alert.Remaining = remaining
	alert.Percent = int(math.Round(pct))
	switch {
	case pct >= criticalPercent:
		alert.Status = AlertCritical
	case pct >= warningPercent:
		alert.Status = AlertWarning
	default:
		alert.Status = AlertOK
	}
	return alert
}

// Alerts grades every record.
func Alerts(records []models.AircraftRecord) []Alert {
	out := make([]Alert, 0, len(records))
	for i := range records {
		out = append(out, CheckAlert(&records[i]))
	}
	return out
}
