// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingStatusEvent is published when an admin approves or rejects
// a booking. It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingStatusEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	ServiceID    uint64  `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	Status       string  `json:"status"`
	AdminMessage string  `json:"admin_message,omitempty"`
	TotalPrice   float64 `json:"total_price"`
	DecidedAt    string  `json:"decided_at"`
}
