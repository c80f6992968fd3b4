package models

import (
	"strings"

	"github.com/Ramsey-B/aster/pkg/faults"
)

// Mission identifies one of the supported survey missions.
type Mission string

const (
	MissionTESS   Mission = "TESS"
	MissionKepler Mission = "KEPLER"
	MissionK2     Mission = "K2"
)

// AllMissions lists the supported missions in fixed priority order. The order
// is the final tie-break when a name resolves against multiple catalogs.
var AllMissions = []Mission{MissionTESS, MissionKepler, MissionK2}

// ParseMission parses a mission literal case-insensitively.
func ParseMission(s string) (Mission, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(MissionTESS):
		return MissionTESS, nil
	case string(MissionKepler):
		return MissionKepler, nil
	case string(MissionK2):
		return MissionK2, nil
	default:
		return "", faults.InvalidMissionf("%q is not one of TESS, KEPLER, K2", s)
	}
}

// CatalogIDName returns the native catalog identifier name for the mission.
func (m Mission) CatalogIDName() string {
	switch m {
	case MissionTESS:
		return "TIC"
	case MissionKepler:
		return "KepID"
	case MissionK2:
		return "EPIC"
	}
	return ""
}
