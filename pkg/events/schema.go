package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ramsey-B/aster/pkg/models"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// EventType defines the type of event
type EventType string

const (
	EventTypeResolutionCompleted EventType = "resolution.completed"
	EventTypePredictionCompleted EventType = "prediction.completed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType     EventType `json:"event_type"`
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// ResolutionCompletedEvent is emitted when a cross-mission resolution finishes
type ResolutionCompletedEvent struct {
	BaseEvent
	Input          string                  `json:"input"`
	Status         models.ResolutionStatus `json:"status"`
	PrimaryMission models.Mission          `json:"primary_mission,omitempty"`
	Missions       []models.Mission        `json:"missions"`
}

// PredictionCompletedEvent is emitted when a classification finishes
type PredictionCompletedEvent struct {
	BaseEvent
	Mission        models.Mission `json:"mission"`
	TargetID       string         `json:"target_id"`
	Probability    float64        `json:"probability"`
	Threshold      float64        `json:"threshold"`
	Classification string         `json:"classification"`
	Custom         bool           `json:"custom_prediction"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		EventType:     eventType,
		SchemaVersion: SchemaVersion,
		Timestamp:     time.Now().UTC(),
		CorrelationID: uuid.New().String(),
	}
}
