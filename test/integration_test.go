package test

import (
	"context"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"
	"roster-lab/mocks"
	"roster-lab/observability"
	"roster-lab/repositories"
	"roster-lab/services"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type engine struct {
	db        *badger.DB
	roster    *repositories.RosterRepository
	messages  *repositories.MessageRepository
	profiles  *repositories.ProfileRepository
	state     *services.RosterState
	rosterSvc *services.RosterService
	favorites *services.FavoritesService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	// Reduced value log for testing (avoid gigabytes of preallocation)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	roster := repositories.NewRosterRepository(db, log)
	messages := repositories.NewMessageRepository(db, log)
	profiles := repositories.NewProfileRepository(db, log)
	state := services.NewRosterState()
	monitoring := observability.NewMonitoring(log)

	return &engine{
		db:        db,
		roster:    roster,
		messages:  messages,
		profiles:  profiles,
		state:     state,
		rosterSvc: services.NewRosterService(log, roster, messages, profiles, state, monitoring),
		favorites: services.NewFavoritesService(log, roster, state, monitoring),
	}
}

func (e *engine) seedProfiles(t *testing.T, ids ...domain.Identity) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, e.profiles.Put(domain.UserProfile{
			Identity:    id,
			DisplayName: "User " + string(id),
		}))
	}
}

func (e *engine) sendMessage(t *testing.T, from, to domain.Identity, at time.Time) {
	t.Helper()
	require.NoError(t, e.messages.StoreMessage(domain.Message{
		ID:          uuid.New(),
		SenderID:    from,
		RecipientID: to,
		SentAt:      at,
		PayloadRef:  "payloads/hello",
	}))
}

// Scenario A: roster = [u1, u2], messages to self from [u2, u3],
// favorites = [u1].
func Test_Scenario_Partitioning(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	ctx := context.Background()
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "self", "u1", "u2", "u3")
	req.NoError(e.roster.AddContact(self, "u1", now))
	req.NoError(e.roster.AddContact(self, "u2", now.Add(time.Second)))
	req.NoError(e.roster.AddFavorite(self, "u1"))
	e.sendMessage(t, "u2", self, now)
	e.sendMessage(t, "u3", self, now.Add(time.Minute))

	view, err := e.rosterSvc.Load(ctx, self)
	req.NoError(err)
	req.False(view.Partial)

	req.Len(view.Added, 2)
	req.Equal(domain.Identity("u1"), view.Added[0].Identity)
	req.Equal(domain.Identity("u2"), view.Added[1].Identity)
	req.Len(view.NotAdded, 1)
	req.Equal(domain.Identity("u3"), view.NotAdded[0].Identity)
	req.Len(view.Favorites, 1)
	req.Equal(domain.Identity("u1"), view.Favorites[0].Identity)
}

// Scenario B: empty roster and empty log yield three empty partitions,
// not an error.
func Test_Scenario_Empty(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)

	view, err := e.rosterSvc.Load(context.Background(), "self")
	req.NoError(err)
	req.False(view.Partial)
	req.Empty(view.Added)
	req.Empty(view.NotAdded)
	req.Empty(view.Favorites)
}

// Scenario C: sender index unavailable, roster = [u1]. Added survives,
// NotAdded degrades to empty with the partial flag set.
func Test_Scenario_Partial_Load(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	ctx := context.Background()
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "u1")
	req.NoError(e.roster.AddContact(self, "u1", now))

	ctrl := gomock.NewController(t)
	brokenIndex := mocks.NewMockIMessageRepository(ctrl)
	brokenIndex.EXPECT().DistinctSenders(self).
		Return(nil, fmt.Errorf("%w: sender index: connection refused", apperrors.ErrSourceUnavailable))

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	monitoring := observability.NewMonitoring(log)
	svc := services.NewRosterService(log, e.roster, brokenIndex, e.profiles, e.state, monitoring)

	view, err := svc.Load(ctx, self)
	req.NoError(err)
	req.True(view.Partial)
	req.Len(view.Added, 1)
	req.Equal(domain.Identity("u1"), view.Added[0].Identity)
	req.Empty(view.NotAdded)
}

// Scenario D: the remote mutation fails; the favorites set must be exactly
// what it was before the call and the caller sees PersistenceFailed.
func Test_Scenario_Toggle_Failure_Reverts(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	ctx := context.Background()
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "u1")
	req.NoError(e.roster.AddContact(self, "u1", now))

	view, err := e.rosterSvc.Load(ctx, self)
	req.NoError(err)
	req.Empty(view.Favorites)

	ctrl := gomock.NewController(t)
	brokenStore := mocks.NewMockIRosterRepository(ctrl)
	brokenStore.EXPECT().HasContact(self, domain.Identity("u1")).Return(true, nil)
	brokenStore.EXPECT().AddFavorite(self, domain.Identity("u1")).
		Return(fmt.Errorf("%w: add favorite: write rejected", apperrors.ErrPersistenceFailed))

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	monitoring := observability.NewMonitoring(log)
	failing := services.NewFavoritesService(log, brokenStore, e.state, monitoring)

	favorites, err := failing.Toggle(ctx, self, "u1")
	req.ErrorIs(err, apperrors.ErrPersistenceFailed)
	req.False(favorites.Has("u1"))
	req.False(e.state.Snapshot(self).Has("u1"))

	// The durable store never saw the flag either.
	persisted, err := e.roster.Favorites(self)
	req.NoError(err)
	req.Empty(persisted)
}

// Toggling twice restores the pre-toggle favorites set exactly, end to end.
func Test_Toggle_Idempotence_Through_Store(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	ctx := context.Background()
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "u1", "u2")
	req.NoError(e.roster.AddContact(self, "u1", now))
	req.NoError(e.roster.AddContact(self, "u2", now.Add(time.Second)))
	req.NoError(e.roster.AddFavorite(self, "u2"))

	_, err := e.rosterSvc.Load(ctx, self)
	req.NoError(err)

	before, err := e.roster.Favorites(self)
	req.NoError(err)

	_, err = e.favorites.Toggle(ctx, self, "u1")
	req.NoError(err)
	_, err = e.favorites.Toggle(ctx, self, "u1")
	req.NoError(err)

	after, err := e.roster.Favorites(self)
	req.NoError(err)
	req.Equal(before, after)
}

// Two concurrent adds of the same target leave it favorited exactly once.
func Test_Concurrent_Adds_Converge(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "u1")
	req.NoError(e.roster.AddContact(self, "u1", now))

	// Both writers believe u1 is not yet a favorite; the store primitive is
	// a union, so the double application must not duplicate or flap.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req.NoError(e.roster.AddFavorite(self, "u1"))
		}()
	}
	wg.Wait()

	favorites, err := e.roster.Favorites(self)
	req.NoError(err)
	req.Equal(domain.NewFavoriteSet("u1"), favorites)

	view, err := e.rosterSvc.Load(context.Background(), self)
	req.NoError(err)
	req.Len(view.Favorites, 1)
}

// A message from self must never create a contact suggestion.
func Test_Self_Sender_Excluded(t *testing.T) {
	req := require.New(t)
	e := newEngine(t)
	now := time.Now().UTC()

	self := domain.Identity("self")
	e.seedProfiles(t, "self")
	e.sendMessage(t, self, self, now)

	view, err := e.rosterSvc.Load(context.Background(), self)
	req.NoError(err)
	req.Empty(view.NotAdded)
}
