package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the application.
const (
	// EventTypeReviewRecorded is emitted after a review submission has been
	// committed to the database.
	EventTypeReviewRecorded = "review.recorded"
)

// Event is a generic application event with a JSON payload. It carries the
// necessary information for handlers without direct dependencies on the
// emitting package.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the kind of event, e.g. EventTypeReviewRecorded
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// ReviewRecordedPayload is the payload of an EventTypeReviewRecorded event.
type ReviewRecordedPayload struct {
	ReviewID        uuid.UUID `json:"review_id"`
	CardID          uuid.UUID `json:"card_id"`
	UserID          uuid.UUID `json:"user_id"`
	Score           float64   `json:"score"`
	Stage           string    `json:"stage"`
	IsFullyReviewed bool      `json:"is_fully_reviewed"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
