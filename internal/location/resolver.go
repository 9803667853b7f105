// Package location resolves free-text mission and base strings to gazetteer
// provinces.
package location

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"fleet_status/internal/dates"

	"golang.org/x/text/unicode/norm"
)

// Place is a gazetteer entry.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// DefaultProvince is returned when no gazetteer entry can be derived.
const DefaultProvince = "Bangkok"

// provinceMarker is the honorific written before a province name.
const provinceMarker = "จ."

// DefaultCoordinates is used for provinces missing from the gazetteer.
var DefaultCoordinates = Place{Name: "นครสวรรค์", Lat: 15.7112, Lon: 100.1153}

var noiseTokens = []string{"ฝนหลวง", "ดัดแปรสภาพอากาศ"}

var dateToken = regexp.MustCompile(`^[\d/.\-]*\d[\d/.\-]*$`)

// Match is the outcome of resolving a location string. Province is always a
// gazetteer entry; Label is the text worth displaying.
type Match struct {
	Province string `json:"province"`
	Label    string `json:"label"`
	Matched  bool   `json:"matched"`
}

// Resolver maps text to gazetteer entries.
type Resolver struct {
	places   []Place
	exact    map[string]Place
	folded   map[string]Place
	fallback string
}

// NewResolver returns a resolver over the built-in gazetteer.
func NewResolver() *Resolver {
	return NewResolverWith(gazetteer, DefaultProvince)
}

// NewResolverWith builds a resolver over places. fallback must name one of them.
func NewResolverWith(places []Place, fallback string) *Resolver {
	r := &Resolver{
		places:   make([]Place, 0, len(places)),
		exact:    make(map[string]Place, len(places)),
		folded:   make(map[string]Place, len(places)),
		fallback: fallback,
	}
	for _, p := range places {
		p.Name = norm.NFC.String(p.Name)
		r.places = append(r.places, p)
		r.exact[p.Name] = p
		r.folded[strings.ToLower(p.Name)] = p
	}
	return r
}

// Places returns the gazetteer in match order.
func (r *Resolver) Places() []Place {
	out := make([]Place, len(r.places))
	copy(out, r.places)
	return out
}

// Lookup finds a place by exact, then case-insensitive, name.
func (r *Resolver) Lookup(name string) (Place, bool) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if p, ok := r.exact[name]; ok {
		return p, true
	}
	p, ok := r.folded[strings.ToLower(name)]
	return p, ok
}

// Coordinates returns the latitude and longitude of a province, falling back
// to DefaultCoordinates.
func (r *Resolver) Coordinates(province string) (float64, float64) {
	if p, ok := r.Lookup(province); ok {
		return p.Lat, p.Lon
	}
	slog.Warn("Province not in gazetteer, using default coordinates", "province", province, "default", DefaultCoordinates.Name)
	return DefaultCoordinates.Lat, DefaultCoordinates.Lon
}

// ResolveProvince returns the gazetteer province for text.
func (r *Resolver) ResolveProvince(text string) string {
	return r.Resolve(text).Province
}

// Resolve picks the gazetteer entry whose mention starts leftmost in text.
// At each entry it checks "จ.<name>", "จ. <name>" and a bare <name> bounded
// by whitespace or commas.
func (r *Resolver) Resolve(text string) Match {
	s := norm.NFC.String(strings.TrimSpace(text))
	for _, noise := range noiseTokens {
		s = strings.ReplaceAll(s, noise, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Match{Province: r.fallback, Label: r.fallback}
	}

	best := -1
	var bestName string
	consider := func(idx int, name string) {
		if idx >= 0 && (best < 0 || idx < best) {
			best, bestName = idx, name
		}
	}
	for _, p := range r.places {
		consider(strings.Index(s, provinceMarker+p.Name), p.Name)
		consider(strings.Index(s, provinceMarker+" "+p.Name), p.Name)
		consider(boundedIndex(s, p.Name), p.Name)
	}
	if best >= 0 {
		return Match{Province: bestName, Label: bestName, Matched: true}
	}

	return r.fallbackMatch(text, s)
}

func (r *Resolver) fallbackMatch(original, s string) Match {
	label := strings.TrimSpace(strings.TrimPrefix(s, provinceMarker))
	if strings.Contains(label, " ") {
		parts := strings.Fields(label)
		switch {
		case dateToken.MatchString(parts[0]):
			label = strings.Join(parts[1:], " ")
		case isMonthAbbr(parts[0]):
			label = ""
		default:
			label = parts[0]
		}
	}
	if label == "" {
		return Match{Province: r.fallback, Label: r.fallback}
	}

	province := r.fallback
	if p, ok := r.Lookup(label); ok {
		province = p.Name
	}
	slog.Debug("Location not matched in gazetteer", "text", original, "label", label, "province", province)
	return Match{Province: province, Label: label}
}

func isMonthAbbr(token string) bool {
	for _, abbr := range dates.ThaiMonthAbbr {
		if strings.Contains(token, strings.TrimSuffix(abbr, ".")) {
			return true
		}
	}
	return false
}

// boundedIndex finds the first occurrence of name delimited by whitespace,
// commas or the ends of s.
func boundedIndex(s, name string) int {
	offset := 0
	for offset <= len(s) {
		i := strings.Index(s[offset:], name)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(name)
		if isDelimiter(s[:start], true) && isDelimiter(s[end:], false) {
			return start
		}
		offset = start + 1
	}
	return -1
}

func isDelimiter(side string, last bool) bool {
	if side == "" {
		return true
	}
	var r rune
	if last {
		r, _ = utf8.DecodeLastRuneInString(side)
	} else {
		r, _ = utf8.DecodeRuneInString(side)
	}
	return unicode.IsSpace(r) || r == ','
}
