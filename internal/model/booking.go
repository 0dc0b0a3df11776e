package model

import "time"

// Booking status values. A booking is created as pending and may be
// moved by an admin to approved or rejected exactly once; both are
// terminal in this service's vocabulary.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
)

// ValidDecision reports whether s is a status an admin may assign.
// Pending is the creation-only state and never a decision target.
func ValidDecision(s string) bool {
	return s == BookingApproved || s == BookingRejected
}

// Booking records a customer's request for a catalog service on a
// given date. The owner is always taken from the authenticated
// identity, never from client input.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – user who made the booking.
//  ServiceID    – catalog service being booked.
//  BookingDate  – requested date (YYYY-MM-DD).
//  BookingTime  – requested time (HH:MM).
//  Participants – number of people, always positive.
//  TotalPrice   – non-negative total in Ringgit.
//  Notes        – optional free-text notes from the customer.
//  Status       – pending / approved / rejected.
//  AdminMessage – optional note from the deciding admin.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp (server-set).
type Booking struct {
	ID           uint64    // bookings.id
	UserID       uint64    // bookings.user_id
	ServiceID    uint64    // bookings.service_id
	BookingDate  string    // bookings.booking_date
	BookingTime  string    // bookings.booking_time
	Participants int       // bookings.participants
	TotalPrice   float64   // bookings.total_price
	Notes        *string   // bookings.notes (nullable)
	Status       string    // bookings.status
	AdminMessage *string   // bookings.admin_message (nullable)
	CreatedAt    time.Time // bookings.created_at
	UpdatedAt    time.Time // bookings.updated_at
}
