package model

import (
	"strings"
	"time"
)

// User is the authoritative identity record stored in the `users`
// table. It carries only what is needed to authenticate; everything
// descriptive about a person lives in the companion Profile row.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, lowercased email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// Profile is the descriptive record paired one-to-one with a User.
// It may lag behind or go missing entirely (partial signups, manual
// deletions); read paths are expected to self-heal rather than fail.
//
// Fields:
//  ID          – equal to the owning users.id.
//  FullName    – display name shown across the site.
//  Phone       – optional contact number.
//  Nationality – optional nationality string.
//  Email       – copy of users.email, repaired on sign-in when stale.
//  Role        – free-text role, lowercased on read, "user" when absent.
//  UpdatedAt   – timestamp of last update (server-set).
type Profile struct {
	ID          uint64    // profiles.id
	FullName    string    // profiles.full_name
	Phone       *string   // profiles.phone (nullable)
	Nationality *string   // profiles.nationality (nullable)
	Email       string    // profiles.email
	Role        string    // profiles.role
	UpdatedAt   time.Time // profiles.updated_at
}

// FallbackProfile synthesizes a default profile from an identity
// when the profiles row is missing. The display name is derived from
// the email's local part and the role defaults to "user".
func FallbackProfile(userID uint64, email string) Profile {
	name, _, found := strings.Cut(email, "@")
	if !found || name == "" {
		name = "User"
	}
	return Profile{ID: userID, FullName: name, Email: email, Role: "user"}
}

// PasswordReset models an entry in the `password_resets` table. The
// plain token is never stored; only its SHA-256 hash.
type PasswordReset struct {
	ID        uint64     // password_resets.id
	UserID    uint64     // password_resets.user_id
	TokenHash string     // password_resets.token_hash
	ExpiresAt time.Time  // password_resets.expires_at
	UsedAt    *time.Time // password_resets.used_at (nullable)
	CreatedAt time.Time  // password_resets.created_at
}
