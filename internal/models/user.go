package models

import "github.com/google/uuid"

// User is the identity carried by a verified access token. Accounts themselves
// live with the identity provider.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
}
