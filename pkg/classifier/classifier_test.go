package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/models"
)

func TestClassify_PrefixedIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mission models.Mission
		kind    IDKind
		value   string
	}{
		{"TIC with space", "TIC 141527965", models.MissionTESS, KindTIC, "141527965"},
		{"TIC with dash", "TIC-141527965", models.MissionTESS, KindTIC, "141527965"},
		{"TOI integer", "TOI 1000", models.MissionTESS, KindTOI, "1000"},
		{"TOI with component", "TOI 1000.01", models.MissionTESS, KindTOI, "1000.01"},
		{"lowercase toi", "toi 1000.01", models.MissionTESS, KindTOI, "1000.01"},
		{"KIC", "KIC 10797460", models.MissionKepler, KindKepID, "10797460"},
		{"KOI", "KOI 752.01", models.MissionKepler, KindKOI, "752.01"},
		{"Kepler name", "Kepler-227", models.MissionKepler, KindKeplerName, "Kepler-227"},
		{"Kepler name with planet letter", "Kepler-227 b", models.MissionKepler, KindKeplerName, "Kepler-227 b"},
		{"EPIC", "EPIC 201367065", models.MissionK2, KindEPIC, "201367065"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := Classify(tt.input)
			require.Len(t, cls.Candidates, 1)

			cand := cls.Candidates[0]
			assert.Equal(t, tt.mission, cand.Mission)
			assert.Equal(t, tt.kind, cand.Kind)
			assert.Equal(t, tt.value, cand.Value)
			assert.True(t, cand.Pattern)
			assert.Equal(t, tt.mission, cls.PatternMission())
		})
	}
}

func TestClassify_BareNumerals(t *testing.T) {
	t.Run("8 digits is ambiguous between TESS and Kepler", func(t *testing.T) {
		cls := Classify("10797460")
		assert.ElementsMatch(t, []models.Mission{models.MissionTESS, models.MissionKepler}, cls.Missions())
	})

	t.Run("9 digits not leading 2 is ambiguous between TESS and Kepler", func(t *testing.T) {
		cls := Classify("141527965")
		assert.ElementsMatch(t, []models.Mission{models.MissionTESS, models.MissionKepler}, cls.Missions())
	})

	t.Run("9 digits leading 2 is ambiguous between TESS and K2", func(t *testing.T) {
		cls := Classify("201367065")
		assert.ElementsMatch(t, []models.Mission{models.MissionTESS, models.MissionK2}, cls.Missions())
	})

	t.Run("10 digits is TESS only", func(t *testing.T) {
		cls := Classify("1234567890")
		assert.Equal(t, []models.Mission{models.MissionTESS}, cls.Missions())
	})

	t.Run("bare numerals never set the pattern flag", func(t *testing.T) {
		cls := Classify("10797460")
		for _, cand := range cls.Candidates {
			assert.False(t, cand.Pattern)
		}
		assert.Equal(t, models.Mission(""), cls.PatternMission())
	})

	t.Run("short numerals fall through to common name", func(t *testing.T) {
		cls := Classify("42")
		assert.Len(t, cls.Candidates, 3)
		for _, cand := range cls.Candidates {
			assert.Equal(t, KindCommonName, cand.Kind)
		}
	})
}

func TestClassify_CommonNameFallback(t *testing.T) {
	cls := Classify("  Proxima Centauri b  ")

	assert.Equal(t, "Proxima Centauri b", cls.Raw)
	require.Len(t, cls.Candidates, 3)
	assert.Equal(t, models.AllMissions, cls.Missions())
	for _, cand := range cls.Candidates {
		assert.Equal(t, KindCommonName, cand.Kind)
		assert.Equal(t, "Proxima Centauri b", cand.Value)
		assert.False(t, cand.Pattern)
	}
}

func TestClassify_NeverEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "!!!", "a"} {
		assert.NotEmpty(t, Classify(input).Candidates, "input %q", input)
	}
}
