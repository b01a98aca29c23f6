package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/google/uuid"
)

// Envelope is the wire form of a published event.
type Envelope struct {
	EventID     string       `json:"eventId"`
	EventName   string       `json:"eventName"`
	AggregateID string       `json:"aggregateId"`
	OccurredAt  time.Time    `json:"occurredAt"`
	Payload     domain.Event `json:"payload"`
}

// NewEnvelope stamps event with a fresh id and the given time.
func NewEnvelope(event domain.Event, at time.Time) Envelope {
	return Envelope{
		EventID:     uuid.NewString(),
		EventName:   event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  at.UTC(),
		Payload:     event,
	}
}

func (e Envelope) marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.EventName, err)
	}
	return b, nil
}
