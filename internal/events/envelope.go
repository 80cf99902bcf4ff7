package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Envelope struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	Types      []string        `json:"types,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope wraps payload (which may be nil) and returns the encoded event.
func NewEnvelope(eventType string, types []string, payload any) ([]byte, error) {
	env := Envelope{
		ID:         uuid.New().String(),
		EventType:  eventType,
		Types:      types,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}
