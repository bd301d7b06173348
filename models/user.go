package models

// User is the profile snapshot cached alongside an authenticated session.
// It is re-fetched from the identity API on every session restore; only the
// token pair is durably persisted.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Slug          string `json:"slug"`
	Type          string `json:"type"`
	Image         string `json:"image,omitempty"`
	Bio           string `json:"bio,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}
