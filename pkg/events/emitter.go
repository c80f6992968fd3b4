// Package events handles event emission for target resolution and prediction
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/kafka"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// Emitter publishes lifecycle events. A nil Emitter is valid and drops
// everything, so callers never branch on the feature flag.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitResolutionCompleted emits an event for a finished cross-mission resolution
func (e *Emitter) EmitResolutionCompleted(ctx context.Context, result *models.ResolutionResult) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitResolutionCompleted")
	defer span.End()

	event := ResolutionCompletedEvent{
		BaseEvent:      NewBaseEvent(EventTypeResolutionCompleted),
		Input:          result.Input,
		Status:         result.Status,
		PrimaryMission: result.PrimaryMission,
		Missions:       resolvedMissions(result.Targets),
	}
	data, _ := json.Marshal(event)

	err := e.producer.PublishTargetEvent(ctx, &kafka.TargetEvent{
		EventType: string(event.EventType),
		Mission:   result.PrimaryMission,
		Input:     result.Input,
		Data:      data,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit resolution.completed event")
	}
}

// EmitPredictionCompleted emits an event for a finished classification
func (e *Emitter) EmitPredictionCompleted(ctx context.Context, result *models.PredictionResult) {
	if e == nil || e.producer == nil {
		return
	}
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitPredictionCompleted")
	defer span.End()

	event := PredictionCompletedEvent{
		BaseEvent:      NewBaseEvent(EventTypePredictionCompleted),
		Mission:        result.Mission,
		TargetID:       result.TargetID,
		Probability:    result.Probability,
		Threshold:      result.Threshold,
		Classification: result.Classification,
		Custom:         result.Custom,
	}
	data, _ := json.Marshal(event)

	err := e.producer.PublishTargetEvent(ctx, &kafka.TargetEvent{
		EventType:      string(event.EventType),
		Mission:        result.Mission,
		TargetID:       result.TargetID,
		Classification: result.Classification,
		Probability:    result.Probability,
		Data:           data,
		Timestamp:      event.Timestamp,
	})
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit prediction.completed event")
	}
}

// resolvedMissions lists the missions present in a resolution, in priority order.
func resolvedMissions(targets map[models.Mission]*models.MissionTarget) []models.Mission {
	out := make([]models.Mission, 0, len(targets))
	for _, m := range models.AllMissions {
		if _, ok := targets[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
