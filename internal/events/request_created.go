package events

import "time"

const RequestCreatedTopic = "reqdesk.request.lifecycle.v1"

// RequestCreatedEvent is published through the outbox whenever a request
// is persisted, so downstream consumers (notifications, reporting) see
// exactly the committed state.
type RequestCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  uint      `json:"request_id"`
	Number     string    `json:"number"`
	EmployeeID uint      `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
