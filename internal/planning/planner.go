package planning

import (
	"fmt"
	"math"
	"strings"
	"time"

	"fleet_status/internal/components"
	"fleet_status/internal/dates"
	"fleet_status/internal/hours"
	"fleet_status/internal/models"
)

const (
	// CheckA is the default check type for airframe projections.
	CheckA = "A-check"
	// storesDueHours is the balance below which an engine in stores is
	// treated as due this year.
	storesDueHours = 100
	// notFound marks a ledger due-date cell with no data.
	notFound = "ไม่พบข้อมูล"
)

// BucketLabel names a rotary-wing check by its interval.
func BucketLabel(bucket int) string {
	return fmt.Sprintf("ครบซ่อม %d ชั่วโมง:", bucket)
}

// Input is everything one planning pass reads.
type Input struct {
	Now      time.Time
	Aircraft []models.AircraftRecord
	Fleet    *components.Fleet
	Ledger   *components.Ledger
	Rates    RateTable
}

// Planner turns current hours and component thresholds into projections.
type Planner struct{}

// NewPlanner creates a planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan projects airframe checks, then engines, then propellers.
func (p *Planner) Plan(in Input) []models.MaintenanceProjection {
	out := make([]models.MaintenanceProjection, 0, len(in.Aircraft))
	out = append(out, p.aircraft(in)...)
	out = append(out, p.engines(in)...)
	out = append(out, p.propellers(in)...)
	return out
}

// CheckRemaining returns the hours left before the next airframe check and
// the check's label. The A-check target wins, then the remaining-check
// column, then the smallest positive rotary-wing bucket.
func CheckRemaining(rec *models.AircraftRecord) (*float64, string) {
	current, target := rec.FlightHours, rec.CheckDueHours
	if current != nil && target != nil && *current != 0 && *target != 0 {
		v := *target - *current
		return &v, CheckA
	}
	if rec.RemainingCheckHours != nil {
		v := *rec.RemainingCheckHours
		return &v, CheckA
	}
	if rec.IsHelicopter() {
		best := -1
		for _, b := range models.Buckets {
			v := rec.RemainingBuckets[b]
			if v == nil || *v <= 0 {
				continue
			}
			if best < 0 || *v < *rec.RemainingBuckets[best] {
				best = b
			}
		}
		if best > 0 {
			v := *rec.RemainingBuckets[best]
			return &v, BucketLabel(best)
		}
	}
	return nil, CheckA
}

func (p *Planner) aircraft(in Input) []models.MaintenanceProjection {
	year := in.Now.Year()
	var out []models.MaintenanceProjection
	for i := range in.Aircraft {
		rec := &in.Aircraft[i]
		if rec.FlightHours == nil {
			continue
		}
		remaining, check := CheckRemaining(rec)
		rate := in.Rates.Yearly(rec.TailNumber)
		remark := rec.Remark

		var due *int
		if g := in.Fleet.Group(rec.TailNumber); g != nil && g.Airframe != nil {
			af := g.Airframe
			if af.Note != "" {
				remark = af.Note
			}
			switch {
			case af.RepairDue != "":
				if y, ok := dates.DueYear(af.RepairDue); ok {
					due = &y
				}
			case af.RepairDueRaw != "":
				if v, ok := hours.Parse(af.RepairDueRaw, rec.Family); ok {
					remaining = &v
					due = ProjectDueYear(v, rate, in.Now)
				}
			}
		}
		if due == nil && remaining != nil {
			due = ProjectDueYear(*remaining, rate, in.Now)
		}

		out = append(out, models.MaintenanceProjection{
			Tail:      rec.TailNumber,
			Kind:      models.Airframe,
			Name:      fmt.Sprintf("%s (%s)", rec.DisplayName, rec.TailNumber),
			Model:     rec.DisplayName,
			Serial:    rec.TailNumber,
			CheckType: check,
			Current:   rec.FlightHours,
			Target:    rec.CheckDueHours,
			Remaining: remaining,
			DailyRate: rate,
			DueYear:   ClampYear(due, year),
			Display:   display(remaining, rec.Family),
			Installed: true,
			Remark:    remark,
		})
	}
	return out
}

// hostHours maps tails to their current airframe hours, preferring the
// status sheet over the component ledger.
func hostHours(in Input) map[string]float64 {
	out := make(map[string]float64, len(in.Aircraft))
	if in.Fleet != nil {
		for tail, g := range in.Fleet.Groups {
			if g.FlightHours != nil && !g.PlaceholderHours {
				out[tail] = *g.FlightHours
			}
		}
	}
	for _, rec := range in.Aircraft {
		if rec.FlightHours != nil {
			out[rec.TailNumber] = *rec.FlightHours
		}
	}
	return out
}

func familyOf(in Input, tail, model string) hours.Family {
	if f := hours.FamilyFor(model); f == hours.DecimalMinutes {
		return f
	}
	if g := in.Fleet.Group(tail); g != nil {
		return g.Family
	}
	return hours.Standard
}

func (p *Planner) engines(in Input) []models.MaintenanceProjection {
	if in.Ledger == nil {
		return nil
	}
	year := in.Now.Year()
	host := hostHours(in)

	var out []models.MaintenanceProjection
	for _, e := range in.Ledger.Engines {
		rec := e.Record
		threshold := rec.OverhaulThreshold.Hours
		if threshold <= 0 {
			continue
		}
		installed := rec.InstalledOn
		f := familyOf(in, installed, rec.Model)

		current := rec.TSN
		if h, ok := host[installed]; ok && installed != "" {
			current = &h
		}
		if current == nil {
			continue
		}

		var remaining *float64
		remark := rec.Note
		if e.Detail != nil {
			if e.Detail.Note != "" {
				remark = e.Detail.Note
			}
			if e.Detail.RepairDue == "" && e.Detail.RepairDueRaw != "" {
				if v, ok := hours.Parse(e.Detail.RepairDueRaw, f); ok {
					remaining = &v
				}
			}
		}
		if remaining == nil {
			v := threshold - math.Mod(*current, threshold)
			remaining = &v
		}

		rate := in.Rates.Yearly(installed)
		due := ProjectDueYear(*remaining, rate, in.Now)
		if *remaining < storesDueHours && installed == "" {
			due = &year
		}

		target := threshold
		out = append(out, models.MaintenanceProjection{
			Tail:      installed,
			Kind:      models.Engine,
			Name:      fmt.Sprintf("Engine %s [in %s]", rec.Model, orDash(installed)),
			Model:     rec.Model,
			Serial:    rec.Serial,
			CheckType: "OH",
			Current:   current,
			Target:    &target,
			Remaining: remaining,
			DailyRate: rate,
			DueYear:   ClampYear(due, year),
			Display:   display(remaining, f),
			Installed: installed != "",
			Remark:    remark,
		})
	}
	return out
}

func (p *Planner) propellers(in Input) []models.MaintenanceProjection {
	if in.Ledger == nil {
		return nil
	}
	year := in.Now.Year()

	var out []models.MaintenanceProjection
	for _, e := range in.Ledger.Propellers {
		rec := e.Record
		installed := rec.InstalledOn
		f := familyOf(in, installed, rec.Model)

		var (
			due       *int
			remaining *float64
		)
		remark := rec.Note
		if e.Detail != nil {
			if e.Detail.Note != "" {
				remark = e.Detail.Note
			}
			switch {
			case e.Detail.RepairDue != "":
				if y, ok := dates.DueYear(e.Detail.RepairDue); ok {
					due = &y
				}
			case e.Detail.RepairDueRaw != "":
				if v, ok := hours.Parse(e.Detail.RepairDueRaw, f); ok {
					remaining = &v
				}
			}
		}

		if raw := strings.TrimSpace(rec.RepairDueRaw); raw != "" && raw != "-" && !strings.Contains(raw, notFound) {
			if y, ok := dates.DueYear(raw); ok {
				due = &y
			}
		}

		rate := in.Rates.Yearly(installed)
		if remaining != nil {
			if y := ProjectDueYear(*remaining, rate, in.Now); y != nil {
				due = y
			}
		}

		var target *float64
		check := "OH"
		if rec.OverhaulThreshold.Hours > 0 {
			t := rec.OverhaulThreshold.Hours
			target = &t
			check = hours.FormatThreshold(rec.OverhaulThreshold, f, true)
		}
		out = append(out, models.MaintenanceProjection{
			Tail:      installed,
			Kind:      models.Propeller,
			Name:      fmt.Sprintf("Propeller %s [in %s]", rec.Model, orDash(installed)),
			Model:     rec.Model,
			Serial:    rec.Serial,
			CheckType: check,
			Target:    target,
			Remaining: remaining,
			DailyRate: rate,
			DueYear:   ClampYear(due, year),
			Display:   display(remaining, f),
			Installed: installed != "",
			Remark:    remark,
		})
	}
	return out
}

func display(v *float64, f hours.Family) string {
	if v == nil {
		return "-"
	}
	return hours.Format(*v, f)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DueIn reports whether a projection falls in year.
func DueIn(p models.MaintenanceProjection, year int) bool {
	return p.DueYear != nil && *p.DueYear == year
}
