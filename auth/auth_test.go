package auth

import (
	"roster-lab/domain"
	"roster-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentIdentity(t *testing.T) {
	t.Run("should round-trip the identity through a token", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateToken("alice", time.Hour)
		req.NoError(err)
		req.NotEmpty(token)

		identity, err := CurrentIdentity(token)
		req.NoError(err)
		req.Equal(domain.Identity("alice"), identity)
	})

	t.Run("should reject an empty token", func(t *testing.T) {
		req := require.New(t)

		_, err := CurrentIdentity("")
		req.ErrorIs(err, errors.ErrNoSession)
	})

	t.Run("should reject a malformed token", func(t *testing.T) {
		req := require.New(t)

		_, err := CurrentIdentity("not.a.token")
		req.ErrorIs(err, errors.ErrNoSession)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateToken("alice", -time.Minute)
		req.NoError(err)

		_, err = CurrentIdentity(token)
		req.ErrorIs(err, errors.ErrNoSession)
	})
}

func TestValidateProfile(t *testing.T) {
	t.Run("should accept a complete profile", func(t *testing.T) {
		require.NoError(t, ValidateProfile(domain.UserProfile{
			Identity:    "alice",
			DisplayName: "Alice Martin",
			AvatarRef:   "avatars/alice.jpg",
		}))
	})

	t.Run("should accept a profile without avatar", func(t *testing.T) {
		require.NoError(t, ValidateProfile(domain.UserProfile{
			Identity:    "alice",
			DisplayName: "Alice Martin",
		}))
	})

	t.Run("should reject a missing identity", func(t *testing.T) {
		require.Error(t, ValidateProfile(domain.UserProfile{DisplayName: "Alice"}))
	})

	t.Run("should reject a missing display name", func(t *testing.T) {
		require.Error(t, ValidateProfile(domain.UserProfile{Identity: "alice"}))
	})
}
