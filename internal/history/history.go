// Package history groups inactive-status remarks into date ranges.
package history

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"fleet_status/internal/dates"
	"fleet_status/internal/models"
)

const (
	// maxGapDays is the largest gap between entries of one range.
	maxGapDays = 3
	// minSimilarity is the similarity at which two remarks are the same event.
	minSimilarity = 0.8
)

// Entry is one inactive day with its remark.
type Entry struct {
	Tail   string `json:"tail"`
	Date   string `json:"date"` // ISO
	Remark string `json:"remark"`
}

// EntriesFrom keeps the inactive records that carry a remark.
func EntriesFrom(records []models.AircraftRecord) []Entry {
	var out []Entry
	for _, rec := range records {
		if rec.Status != models.Inactive {
			continue
		}
		remark := strings.TrimSpace(rec.Remark)
		if remark == "" || remark == "-" {
			continue
		}
		out = append(out, Entry{Tail: rec.TailNumber, Date: rec.AsOf, Remark: remark})
	}
	return out
}

// Similarity is one minus the edit distance over the longer length, ignoring
// case. Empty input scores 0.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longer := la
	if lb > longer {
		longer = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return float64(longer-dist) / float64(longer)
}

func sameEvent(a, b string) bool {
	return a == b || Similarity(a, b) >= minSimilarity
}

func joins(e Entry, open *models.HistoryRange) bool {
	gap, err := dates.DaysBetween(e.Date, open.End)
	return err == nil && gap <= maxGapDays && sameEvent(e.Remark, open.Remark)
}

// Group merges entries per tail into ranges. Entries are deduplicated on
// date and remark, then walked in date order; an entry joins the open range
// when it falls on the range's last day, or when it is at most three days
// after its end and its remark is the same or similar. The longer remark
// represents the range. Ranges are returned most recent first.
func Group(entries []Entry) []models.HistoryRange {
	byTail := make(map[string][]Entry)
	seen := make(map[Entry]bool, len(entries))
	for _, e := range entries {
		e.Remark = strings.TrimSpace(e.Remark)
		if seen[e] {
			continue
		}
		seen[e] = true
		byTail[e.Tail] = append(byTail[e.Tail], e)
	}

	var out []models.HistoryRange
	for tail, list := range byTail {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date < list[j].Date
		})

		var open *models.HistoryRange
		for _, e := range list {
			if open != nil {
				if e.Date <= open.End || joins(e, open) {
					open.End = e.Date
					open.Count++
					if len([]rune(e.Remark)) > len([]rune(open.Remark)) {
						open.Remark = e.Remark
					}
					continue
				}
				out = append(out, *open)
			}
			open = &models.HistoryRange{Tail: tail, Start: e.Date, End: e.Date, Remark: e.Remark, Count: 1}
		}
		if open != nil {
			out = append(out, *open)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start > out[j].Start
		}
		return out[i].Tail < out[j].Tail
	})
	return out
}

// ForTail filters ranges to one tail. An empty tail keeps everything.
func ForTail(ranges []models.HistoryRange, tail string) []models.HistoryRange {
	if tail == "" {
		return ranges
	}
	out := make([]models.HistoryRange, 0)
	for _, r := range ranges {
		if r.Tail == tail {
			out = append(out, r)
		}
	}
	return out
}
