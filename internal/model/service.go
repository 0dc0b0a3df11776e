package model

import "time"

// Service is a bookable catalog item managed by admins. Inactive
// services stay in the table but are hidden from public listings.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the experience.
//  Description – marketing description.
//  Price       – price in Malaysian Ringgit.
//  Duration    – human readable duration ("2 hours", "Half day").
//  ImageURL    – optional hero image.
//  Active      – whether the service is publicly listed.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp (server-set).
type Service struct {
	ID          uint64    // services.id
	Name        string    // services.name
	Description string    // services.description
	Price       float64   // services.price
	Duration    string    // services.duration
	ImageURL    *string   // services.image_url (nullable)
	Active      bool      // services.active
	CreatedAt   time.Time // services.created_at
	UpdatedAt   time.Time // services.updated_at
}
