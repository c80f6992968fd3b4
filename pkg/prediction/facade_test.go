package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/cache"
	"github.com/Ramsey-B/aster/pkg/catalog"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
)

type fakeModel struct {
	probability float64
	err         error
	calls       int
}

func (f *fakeModel) Predict(ctx context.Context, mission models.Mission, features models.FeatureSet) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.probability, nil
}

func (f *fakeModel) Available(ctx context.Context, mission models.Mission) error {
	return f.err
}

type fakeAdapter struct {
	mission models.Mission
	target  *models.MissionTarget
	err     error
	lookups []classifier.Candidate
}

func (f *fakeAdapter) Mission() models.Mission { return f.mission }

func (f *fakeAdapter) Lookup(ctx context.Context, cand classifier.Candidate) (*models.MissionTarget, error) {
	f.lookups = append(f.lookups, cand)
	if f.err != nil {
		return nil, f.err
	}
	return f.target, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testThresholds() Thresholds {
	return Thresholds{
		models.MissionTESS:   0.4,
		models.MissionKepler: 0.4,
		models.MissionK2:     0.6,
	}
}

func newTestService(adapter catalog.Adapter, model ModelClient) *Service {
	store := cache.New(cache.Config{
		PredictionTTL: time.Hour,
		FeaturesTTL:   time.Hour,
		LightcurveTTL: time.Hour,
	})
	return NewService([]catalog.Adapter{adapter}, model, testThresholds(), store, nil, testLogger())
}

func tessTarget() *models.MissionTarget {
	return &models.MissionTarget{
		Mission:   models.MissionTESS,
		CatalogID: 141527965,
		Raw: map[string]any{
			"pl_orbper": 3.5,
			"st_teff":   5700.0,
		},
	}
}

func TestPredict_AboveThresholdConfirms(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{probability: 0.41})

	result, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	assert.Equal(t, models.ClassConfirmed, result.Classification)
	assert.Equal(t, 0.41, result.Probability)
	assert.Equal(t, 0.4, result.Threshold)
	assert.False(t, result.Custom)
}

func TestPredict_BelowThresholdIsFalsePositive(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{probability: 0.39})

	result, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	assert.Equal(t, models.ClassFalsePositive, result.Classification)
}

func TestPredict_ThresholdBoundaryConfirms(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{probability: 0.4})

	result, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	assert.Equal(t, models.ClassConfirmed, result.Classification)
}

func TestPredict_K2UsesItsOwnThreshold(t *testing.T) {
	adapter := &fakeAdapter{
		mission: models.MissionK2,
		target:  &models.MissionTarget{Mission: models.MissionK2, CatalogID: 201367065, Raw: map[string]any{"pl_orbper": 10.0}},
	}
	svc := newTestService(adapter, &fakeModel{probability: 0.5})

	result, err := svc.Predict(context.Background(), models.MissionK2, "201367065")
	require.NoError(t, err)

	// 0.5 confirms for TESS/Kepler but not for K2's 0.6 threshold
	assert.Equal(t, models.ClassFalsePositive, result.Classification)
	assert.Equal(t, 0.6, result.Threshold)
}

func TestPredict_RoundsProbability(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{probability: 0.123456789})

	result, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	assert.Equal(t, 0.1235, result.Probability)
}

func TestPredict_ResultsAreCached(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	model := &fakeModel{probability: 0.8}
	svc := newTestService(adapter, model)

	_, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)
	_, err = svc.Predict(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Len(t, adapter.lookups, 1)
}

func TestPredict_TargetNotFound(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, err: faults.ErrNotFound}
	svc := newTestService(adapter, &fakeModel{probability: 0.8})

	_, err := svc.Predict(context.Background(), models.MissionTESS, "999999999")
	assert.ErrorIs(t, err, faults.ErrNotFound)
}

func TestPredict_ModelUnavailable(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{err: faults.ModelUnavailablef("no classifier loaded")})

	_, err := svc.Predict(context.Background(), models.MissionTESS, "141527965")
	assert.ErrorIs(t, err, faults.ErrModelUnavailable)
}

func TestPredictCustom(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	model := &fakeModel{probability: 0.9}
	svc := newTestService(adapter, model)

	result, err := svc.PredictCustom(context.Background(), models.MissionTESS, "custom-1", map[string]float64{
		"orbital_period": 3.5,
		"stellar_teff":   5700,
	})
	require.NoError(t, err)

	assert.True(t, result.Custom)
	assert.Equal(t, models.ClassConfirmed, result.Classification)
	assert.Empty(t, adapter.lookups, "custom predictions skip the catalog")

	// custom predictions never hit the cache
	_, err = svc.PredictCustom(context.Background(), models.MissionTESS, "custom-1", map[string]float64{
		"orbital_period": 3.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls)
}

func TestFeatures(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}
	svc := newTestService(adapter, &fakeModel{})

	fs, err := svc.Features(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)

	require.NotNil(t, fs["orbital_period"])
	assert.Equal(t, 3.5, *fs["orbital_period"])
	assert.Nil(t, fs["transit_depth"])
	assert.Equal(t, 2, fs.Available())

	// served from cache on the second call
	_, err = svc.Features(context.Background(), models.MissionTESS, "141527965")
	require.NoError(t, err)
	assert.Len(t, adapter.lookups, 1)
}

func TestFeatures_NativeIDKind(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionKepler, target: &models.MissionTarget{
		Mission:   models.MissionKepler,
		CatalogID: 10797460,
		Raw:       map[string]any{"koi_period": 9.48},
	}}
	svc := newTestService(adapter, &fakeModel{})

	_, err := svc.Features(context.Background(), models.MissionKepler, "10797460")
	require.NoError(t, err)

	require.Len(t, adapter.lookups, 1)
	assert.Equal(t, classifier.KindKepID, adapter.lookups[0].Kind)
	assert.Equal(t, "10797460", adapter.lookups[0].Value)
}

func TestStatus(t *testing.T) {
	adapter := &fakeAdapter{mission: models.MissionTESS, target: tessTarget()}

	t.Run("all models available", func(t *testing.T) {
		svc := newTestService(adapter, &fakeModel{})
		status := svc.Status(context.Background())

		assert.Equal(t, 3, status.TotalAvailable)
		assert.Equal(t, models.AllMissions, status.AvailableMissions)
		assert.True(t, status.Models[models.MissionK2].Available)
		assert.Equal(t, 0.6, status.Models[models.MissionK2].Threshold)
	})

	t.Run("no models available", func(t *testing.T) {
		svc := newTestService(adapter, &fakeModel{err: faults.ModelUnavailablef("no model service configured")})
		status := svc.Status(context.Background())

		assert.Equal(t, 0, status.TotalAvailable)
		assert.False(t, status.Models[models.MissionTESS].Available)
		assert.NotEmpty(t, status.Models[models.MissionTESS].Error)
	})
}
