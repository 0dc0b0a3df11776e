package model

// Session is the cached projection of an authenticated identity plus
// its profile. It is derived wholesale at sign-in, deleted at
// sign-out, and is a cache only: role-sensitive decisions must
// re-derive from the profiles table, never from here.
type Session struct {
	UserID   uint64  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
}
