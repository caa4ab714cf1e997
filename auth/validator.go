package auth

import (
	"roster-lab/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateProfile enforces the structural constraints on a profile before it
// reaches the store: identity and display name required, bounded lengths.
func ValidateProfile(profile domain.UserProfile) error {
	return validate.Struct(profile)
}
