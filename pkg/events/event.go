package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "GENERATION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event codes published by the generation workflow.
const (
	TypeGenerationCompleted = "GENERATION_COMPLETED"
	TypeGenerationFailed    = "GENERATION_FAILED"
	TypeQuizPublished       = "QUIZ_PUBLISHED"
	TypeQuizSubmitted       = "QUIZ_SUBMITTED"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
