// Package domain contains core concepts of the roster system.
// This file defines identities and profiles.
// No storage, network, or UI logic should be added here.
package domain

// Identity is the opaque, stable identifier of a user account.
// Immutable once issued.
type Identity string

func (i Identity) IsZero() bool {
	return i == ""
}

// UserProfile is the display-facing projection of an account.
// Owned by the account subsystem; read-only here.
type UserProfile struct {
	Identity    Identity `validate:"required" json:"identity"`
	DisplayName string   `validate:"required,max=64" json:"display_name"`
	AvatarRef   string   `validate:"omitempty,max=512" json:"avatar_ref"`
}
