package mq

import (
	"context"
	"encoding/json"
	"log"

	"barbearia/models"
	"barbearia/rdx"
	"barbearia/utils"
)

// Lifecycle event types published on the booking channel.
const (
	EventRequestSubmitted = "request-submitted"
	EventRequestApproved  = "request-approved"
	EventRequestRejected  = "request-rejected"
)

const channel = "booking-events"

// Event carries a snapshot of the request at transition time. Delivery
// consumers never read storage; the snapshot is all they get.
type Event struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Request models.Request `json:"request"`
}

// Emit publishes a lifecycle event to Redis. Called only after the state
// transition has committed; a publish failure is logged and dropped — it
// must never affect the transition that already happened.
func Emit(ctx context.Context, eventType string, req models.Request) {
	event := Event{
		ID:      utils.GetUUID(),
		Type:    eventType,
		Request: req,
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event: %v", eventType, err)
	}
}
