// Package queue carries domain events over RabbitMQ: a publisher used on the
// request path and long-running consumers started by the server.
package queue

import "time"

// Queue names. Both queues are durable.
const (
	OTPRequestedQueue = "otp.requested"
	ShipmentEvents    = "shipment.events"
)

// OTPRequestedEvent asks the mail consumer to deliver a one-time code.
type OTPRequestedEvent struct {
	Email       string    `json:"email"`
	Code        string    `json:"code"`
	RequestedAt time.Time `json:"requested_at"`
}

// ShipmentEvent records a create or update of a shipment.
type ShipmentEvent struct {
	Action     string    `json:"action"` // created | updated | dispatched | checked_in | rescaled | harbor_reception | centra_reception
	ShipmentID int64     `json:"shipment_id"`
	UserID     string    `json:"user_id"`
	CourierID  int64     `json:"courier_id"`
	Quantity   int64     `json:"quantity"`
	FlourIDs   []int64   `json:"flour_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}
