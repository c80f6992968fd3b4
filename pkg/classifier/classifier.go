// Package classifier inspects raw user-entered target names and decides which
// mission catalogs could hold them. Rules are evaluated independently; a bare
// numeral that satisfies several digit-length rules becomes a candidate for
// every mission it matches, and the catalog lookup decides the rest. Strings
// that match nothing fall back to all three missions as common names, so
// classification never fails.
package classifier

import (
	"regexp"
	"strings"

	"github.com/Ramsey-B/aster/pkg/models"
)

// IDKind names the identifier form a candidate was derived from.
type IDKind string

const (
	KindTIC        IDKind = "TIC"
	KindTOI        IDKind = "TOI"
	KindKepID      IDKind = "KepID"
	KindKOI        IDKind = "KOI"
	KindKeplerName IDKind = "KeplerName"
	KindEPIC       IDKind = "EPIC"
	KindCommonName IDKind = "CommonName"
)

// Candidate pairs a mission with the identifier form to look it up by.
type Candidate struct {
	Mission models.Mission
	Kind    IDKind
	Value   string // extracted id text, or the raw input for common names
	Pattern bool   // true when a mission-native prefixed pattern matched
}

// Classification is the immutable result of classifying one raw string.
type Classification struct {
	Raw        string
	Candidates []Candidate
}

// Missions returns the distinct candidate missions in rule order.
func (c Classification) Missions() []models.Mission {
	seen := make(map[models.Mission]bool, 3)
	out := make([]models.Mission, 0, 3)
	for _, cand := range c.Candidates {
		if !seen[cand.Mission] {
			seen[cand.Mission] = true
			out = append(out, cand.Mission)
		}
	}
	return out
}

// PatternMission returns the single mission whose native prefixed pattern
// matched, or "" when zero or several did.
func (c Classification) PatternMission() models.Mission {
	var found models.Mission
	for _, cand := range c.Candidates {
		if !cand.Pattern {
			continue
		}
		if found != "" && found != cand.Mission {
			return ""
		}
		found = cand.Mission
	}
	return found
}

var (
	ticRe        = regexp.MustCompile(`(?i)^TIC[-\s]?(\d+)$`)
	toiRe        = regexp.MustCompile(`(?i)^TOI[-\s]?(\d+(?:\.\d+)?)$`)
	kicRe        = regexp.MustCompile(`(?i)^KIC[-\s]?(\d+)$`)
	koiRe        = regexp.MustCompile(`(?i)^KOI[-\s]?(\d+(?:\.\d+)?)$`)
	keplerNameRe = regexp.MustCompile(`(?i)^Kepler[-\s]?(\d+)\s*[a-z]?$`)
	epicRe       = regexp.MustCompile(`(?i)^EPIC[-\s]?(\d+)$`)
	bareRe       = regexp.MustCompile(`^\d+$`)
)

// Classify maps a raw identifier to its candidate missions. It always returns
// at least one candidate.
func Classify(raw string) Classification {
	trimmed := strings.TrimSpace(raw)
	cls := Classification{Raw: trimmed}

	add := func(m models.Mission, kind IDKind, value string, pattern bool) {
		cls.Candidates = append(cls.Candidates, Candidate{
			Mission: m,
			Kind:    kind,
			Value:   value,
			Pattern: pattern,
		})
	}

	if m := ticRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionTESS, KindTIC, m[1], true)
	}
	if m := toiRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionTESS, KindTOI, m[1], true)
	}
	if m := kicRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionKepler, KindKepID, m[1], true)
	}
	if m := koiRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionKepler, KindKOI, m[1], true)
	}
	if m := keplerNameRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionKepler, KindKeplerName, trimmed, true)
	}
	if m := epicRe.FindStringSubmatch(trimmed); m != nil {
		add(models.MissionK2, KindEPIC, m[1], true)
	}

	if bareRe.MatchString(trimmed) {
		// Bare numerals overlap across catalogs; every digit-length rule that
		// matches produces a candidate and the adapters disambiguate by
		// actually querying. A failed lookup removes the mission downstream.
		n := len(trimmed)
		if n >= 8 && n <= 10 {
			add(models.MissionTESS, KindTIC, trimmed, false)
		}
		if n == 8 || (n == 9 && trimmed[0] != '2') {
			add(models.MissionKepler, KindKepID, trimmed, false)
		}
		if n == 9 && trimmed[0] == '2' {
			add(models.MissionK2, KindEPIC, trimmed, false)
		}
	}

	if len(cls.Candidates) == 0 {
		// Free-text common name: candidate for every mission, resolved by
		// catalog lookup rather than pattern.
		for _, m := range models.AllMissions {
			add(m, KindCommonName, trimmed, false)
		}
	}

	return cls
}
