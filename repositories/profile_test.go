package repositories

import (
	"log/slog"
	"roster-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ResolveBatch_Skips_Misses(t *testing.T) {
	req := require.New(t)
	repository := NewProfileRepository(openTestDB(t), slog.Default())

	stored := []domain.UserProfile{
		{Identity: "alice", DisplayName: "Alice Martin"},
		{Identity: "bruno", DisplayName: "Bruno Costa", AvatarRef: "avatars/bruno.jpg"},
	}
	for _, profile := range stored {
		req.NoError(repository.Put(profile))
	}

	profiles, err := repository.ResolveBatch(map[domain.Identity]struct{}{
		"alice": {},
		"bruno": {},
		"ghost": {}, // no profile: omitted, not an error
	})
	req.NoError(err)
	req.Len(profiles, 2)
	req.Equal(stored[0], profiles["alice"])
	req.Equal(stored[1], profiles["bruno"])
	req.NotContains(profiles, domain.Identity("ghost"))
}

func Test_ResolveBatch_Empty_Set(t *testing.T) {
	req := require.New(t)
	repository := NewProfileRepository(openTestDB(t), slog.Default())

	profiles, err := repository.ResolveBatch(nil)
	req.NoError(err)
	req.Empty(profiles)
}

func Test_Put_Rejects_Invalid_Profile(t *testing.T) {
	req := require.New(t)
	repository := NewProfileRepository(openTestDB(t), slog.Default())

	t.Run("missing identity", func(t *testing.T) {
		req.Error(repository.Put(domain.UserProfile{DisplayName: "No Identity"}))
	})

	t.Run("missing display name", func(t *testing.T) {
		req.Error(repository.Put(domain.UserProfile{Identity: "alice"}))
	})
}

func Test_Put_Overwrites_Profile(t *testing.T) {
	req := require.New(t)
	repository := NewProfileRepository(openTestDB(t), slog.Default())

	req.NoError(repository.Put(domain.UserProfile{Identity: "alice", DisplayName: "Alice"}))
	req.NoError(repository.Put(domain.UserProfile{Identity: "alice", DisplayName: "Alice Martin"}))

	profiles, err := repository.ResolveBatch(map[domain.Identity]struct{}{"alice": {}})
	req.NoError(err)
	req.Equal("Alice Martin", profiles["alice"].DisplayName)
}
