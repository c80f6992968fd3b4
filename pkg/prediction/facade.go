// Package prediction wraps the mission classifiers: it fetches and normalizes
// a target's features, invokes the model, and applies the mission's decision
// threshold.
package prediction

import (
	"context"
	"errors"
	"math"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/cache"
	"github.com/Ramsey-B/aster/pkg/catalog"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/features"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// Thresholds holds the per-mission decision thresholds. Tunable per
// deployment via configuration.
type Thresholds map[models.Mission]float64

// Service is the prediction façade.
type Service struct {
	adapters   []catalog.Adapter
	model      ModelClient
	thresholds Thresholds
	cache      *cache.Cache
	emitter    *events.Emitter
	logger     ectologger.Logger
}

// NewService creates the façade.
func NewService(adapters []catalog.Adapter, model ModelClient, thresholds Thresholds, c *cache.Cache, emitter *events.Emitter, logger ectologger.Logger) *Service {
	return &Service{
		adapters:   adapters,
		model:      model,
		thresholds: thresholds,
		cache:      c,
		emitter:    emitter,
		logger:     logger,
	}
}

// Predict looks up the target in its mission's catalog, normalizes its
// features, and classifies. Results are cached under the prediction TTL.
func (s *Service) Predict(ctx context.Context, mission models.Mission, targetID string) (*models.PredictionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "prediction.Service.Predict")
	defer span.End()

	key := cache.Key("predict", string(mission), targetID)
	return cache.GetOrCompute(ctx, s.cache, key, cache.TTLPrediction, func(ctx context.Context) (*models.PredictionResult, error) {
		fs, err := s.targetFeatures(ctx, mission, targetID)
		if err != nil {
			return nil, err
		}
		return s.classify(ctx, mission, targetID, fs, false)
	})
}

// PredictCustom classifies caller-supplied feature values without a catalog
// lookup. Custom predictions are never cached.
func (s *Service) PredictCustom(ctx context.Context, mission models.Mission, targetID string, values map[string]float64) (*models.PredictionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "prediction.Service.PredictCustom")
	defer span.End()

	return s.classify(ctx, mission, targetID, features.FromMap(values), true)
}

// Features returns the normalized feature set for a target, cached under the
// features TTL.
func (s *Service) Features(ctx context.Context, mission models.Mission, targetID string) (models.FeatureSet, error) {
	ctx, span := tracing.StartSpan(ctx, "prediction.Service.Features")
	defer span.End()

	key := cache.Key("features", string(mission), targetID)
	return cache.GetOrCompute(ctx, s.cache, key, cache.TTLFeatures, func(ctx context.Context) (models.FeatureSet, error) {
		return s.targetFeatures(ctx, mission, targetID)
	})
}

// Status reports per-mission classifier availability.
func (s *Service) Status(ctx context.Context) *models.ModelsStatusResponse {
	ctx, span := tracing.StartSpan(ctx, "prediction.Service.Status")
	defer span.End()

	resp := &models.ModelsStatusResponse{
		AvailableMissions: models.AllMissions,
		Models:            make(map[models.Mission]models.ModelStatus, len(models.AllMissions)),
	}
	for _, m := range models.AllMissions {
		if err := s.model.Available(ctx, m); err != nil {
			resp.Models[m] = models.ModelStatus{Available: false, Error: err.Error()}
			continue
		}
		resp.Models[m] = models.ModelStatus{Available: true, Threshold: s.thresholds[m]}
		resp.TotalAvailable++
	}
	return resp
}

// targetFeatures resolves the target via a single-mission native-id lookup and
// normalizes its raw row.
func (s *Service) targetFeatures(ctx context.Context, mission models.Mission, targetID string) (models.FeatureSet, error) {
	adapter, err := catalog.ForMission(s.adapters, mission)
	if err != nil {
		return nil, err
	}

	cand := nativeCandidate(mission, targetID)
	target, err := adapter.Lookup(ctx, cand)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			return nil, faults.NotFoundf("no features for %s %s", mission, targetID)
		}
		return nil, err
	}

	return features.Normalize(target), nil
}

func (s *Service) classify(ctx context.Context, mission models.Mission, targetID string, fs models.FeatureSet, custom bool) (*models.PredictionResult, error) {
	proba, err := s.model.Predict(ctx, mission, fs)
	if err != nil {
		return nil, err
	}

	threshold := s.thresholds[mission]
	classification := models.ClassFalsePositive
	if proba >= threshold {
		classification = models.ClassConfirmed
	}

	result := &models.PredictionResult{
		Mission:        mission,
		TargetID:       targetID,
		Probability:    round4(proba),
		Threshold:      threshold,
		Classification: classification,
		UsedFeatures:   fs,
		Custom:         custom,
	}

	s.emitter.EmitPredictionCompleted(ctx, result)
	s.logger.WithContext(ctx).Infof("Prediction complete for %s %s: %s (p=%.4f)",
		mission, targetID, classification, proba)

	return result, nil
}

// nativeCandidate builds the catalog-id candidate for a single-mission lookup.
func nativeCandidate(mission models.Mission, targetID string) classifier.Candidate {
	kind := classifier.KindCommonName
	switch mission {
	case models.MissionTESS:
		kind = classifier.KindTIC
	case models.MissionKepler:
		kind = classifier.KindKepID
	case models.MissionK2:
		kind = classifier.KindEPIC
	}
	return classifier.Candidate{Mission: mission, Kind: kind, Value: targetID}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
