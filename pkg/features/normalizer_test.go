package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/models"
)

func TestNormalize_CoversFullVocabulary(t *testing.T) {
	target := &models.MissionTarget{
		Mission: models.MissionTESS,
		Raw: map[string]any{
			"pl_orbper": 3.5,
			"st_teff":   5700.0,
		},
	}

	fs := Normalize(target)

	require.Len(t, fs, len(Vocabulary))
	for _, name := range Vocabulary {
		_, ok := fs[name]
		assert.True(t, ok, "missing key %s", name)
	}

	require.NotNil(t, fs[OrbitalPeriod])
	assert.Equal(t, 3.5, *fs[OrbitalPeriod])
	require.NotNil(t, fs[StellarTeff])
	assert.Equal(t, 5700.0, *fs[StellarTeff])

	// absent columns stay as explicit nils, never zeros
	assert.Nil(t, fs[TransitDepth])
	assert.Nil(t, fs[Magnitude])
}

func TestNormalize_TransitDurationUnits(t *testing.T) {
	t.Run("hours column used as-is", func(t *testing.T) {
		fs := Normalize(&models.MissionTarget{
			Mission: models.MissionTESS,
			Raw:     map[string]any{"pl_trandurh": 2.5},
		})
		require.NotNil(t, fs[TransitDuration])
		assert.Equal(t, 2.5, *fs[TransitDuration])
	})

	t.Run("days column converted to hours", func(t *testing.T) {
		fs := Normalize(&models.MissionTarget{
			Mission: models.MissionTESS,
			Raw:     map[string]any{"pl_trandur": 0.25},
		})
		require.NotNil(t, fs[TransitDuration])
		assert.Equal(t, 6.0, *fs[TransitDuration])
	})

	t.Run("hours column wins when both present", func(t *testing.T) {
		fs := Normalize(&models.MissionTarget{
			Mission: models.MissionTESS,
			Raw:     map[string]any{"pl_trandurh": 2.5, "pl_trandur": 0.25},
		})
		require.NotNil(t, fs[TransitDuration])
		assert.Equal(t, 2.5, *fs[TransitDuration])
	})

	t.Run("Kepler duration is already hours", func(t *testing.T) {
		fs := Normalize(&models.MissionTarget{
			Mission: models.MissionKepler,
			Raw:     map[string]any{"koi_duration": 4.2},
		})
		require.NotNil(t, fs[TransitDuration])
		assert.Equal(t, 4.2, *fs[TransitDuration])
	})
}

func TestNormalize_ValueCoercion(t *testing.T) {
	fs := Normalize(&models.MissionTarget{
		Mission: models.MissionKepler,
		Raw: map[string]any{
			"koi_period": "9.48803557", // TAP sometimes returns strings
			"koi_depth":  int64(615),
			"koi_teq":    nil,
		},
	})

	require.NotNil(t, fs[OrbitalPeriod])
	assert.InDelta(t, 9.48803557, *fs[OrbitalPeriod], 1e-9)
	require.NotNil(t, fs[TransitDepth])
	assert.Equal(t, 615.0, *fs[TransitDepth])
	assert.Nil(t, fs[EquilibriumTemp])
}

func TestNormalize_K2HasNoDurationColumn(t *testing.T) {
	fs := Normalize(&models.MissionTarget{
		Mission: models.MissionK2,
		Raw: map[string]any{
			"pl_orbper": 10.0,
			"sy_kepmag": 12.3,
		},
	})

	assert.Nil(t, fs[TransitDuration])
	assert.Nil(t, fs[TransitDepth])
	require.NotNil(t, fs[Magnitude])
	assert.Equal(t, 12.3, *fs[Magnitude])
	assert.Equal(t, 2, fs.Available())
}

func TestFromMap(t *testing.T) {
	fs := FromMap(map[string]float64{
		OrbitalPeriod: 3.5,
		"bogus":       1.0,
	})

	require.Len(t, fs, len(Vocabulary))
	require.NotNil(t, fs[OrbitalPeriod])
	assert.Equal(t, 3.5, *fs[OrbitalPeriod])
	assert.Nil(t, fs[PlanetRadius])
	_, ok := fs["bogus"]
	assert.False(t, ok)
}

func TestIsCanonical(t *testing.T) {
	for _, name := range Vocabulary {
		assert.True(t, IsCanonical(name))
	}
	assert.False(t, IsCanonical("pl_orbper"))
	assert.False(t, IsCanonical(""))
}
