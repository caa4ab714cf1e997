package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"
	"roster-lab/observability"
	"roster-lab/projection"
	"roster-lab/repositories"
	"sync"
)

type IRosterService interface {
	Load(ctx context.Context, self domain.Identity) (domain.RosterView, error)
}

// RosterService reconciles the three sources (roster store, sender index,
// profile store) into one consistent snapshot.
type RosterService struct {
	log        *slog.Logger
	roster     repositories.IRosterRepository
	messages   repositories.IMessageRepository
	profiles   repositories.IProfileRepository
	state      *RosterState
	monitoring *observability.Monitoring
}

func NewRosterService(
	log *slog.Logger,
	roster repositories.IRosterRepository,
	messages repositories.IMessageRepository,
	profiles repositories.IProfileRepository,
	state *RosterState,
	monitoring *observability.Monitoring,
) *RosterService {
	return &RosterService{
		log:        log,
		roster:     roster,
		messages:   messages,
		profiles:   profiles,
		state:      state,
		monitoring: monitoring,
	}
}

// Load produces the tab-partitioned view for self.
//
// The three reads are independent, so they run concurrently; profile
// resolution genuinely depends on their results and runs after, as one
// batched call covering roster members and unknown senders together.
//
// Failure policy: the roster store is fatal (Added/Favorites cannot exist
// without it), the sender index degrades the result to Partial with an empty
// NotAdded, a profile miss silently omits that one user.
func (s *RosterService) Load(ctx context.Context, self domain.Identity) (domain.RosterView, error) {
	if self.IsZero() {
		return domain.RosterView{}, apperrors.ErrNoSession
	}

	var (
		entries    []domain.RosterEntry
		favorites  domain.FavoriteSet
		senders    map[domain.Identity]struct{}
		entriesErr error
		favsErr    error
		sendersErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		entries, entriesErr = s.roster.Entries(self)
	}()
	go func() {
		defer wg.Done()
		favorites, favsErr = s.roster.Favorites(self)
	}()
	go func() {
		defer wg.Done()
		senders, sendersErr = s.messages.DistinctSenders(self)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.RosterView{}, fmt.Errorf("%w: load cancelled: %s", apperrors.ErrSourceUnavailable, err)
	}
	if entriesErr != nil {
		return domain.RosterView{}, fmt.Errorf("roster entries: %w", entriesErr)
	}
	if favsErr != nil {
		return domain.RosterView{}, fmt.Errorf("favorites: %w", favsErr)
	}

	partial := false
	if sendersErr != nil {
		if !errors.Is(sendersErr, apperrors.ErrSourceUnavailable) {
			return domain.RosterView{}, fmt.Errorf("sender index: %w", sendersErr)
		}
		// Degraded load: NotAdded is unknown, not confirmed empty.
		s.log.Warn("sender index unavailable, returning partial view",
			"self", self, "error", sendersErr)
		s.monitoring.PartialLoads.Add(1)
		senders = nil
		partial = true
	}

	unknown := projection.UnknownSenders(self, entries, senders)

	toResolve := make(map[domain.Identity]struct{}, len(entries)+len(unknown))
	for _, entry := range entries {
		toResolve[entry.Identity] = struct{}{}
	}
	for sender := range unknown {
		toResolve[sender] = struct{}{}
	}

	profiles, err := s.profiles.ResolveBatch(toResolve)
	if err != nil {
		return domain.RosterView{}, fmt.Errorf("resolve profiles: %w", err)
	}
	if misses := len(toResolve) - len(profiles); misses > 0 {
		s.monitoring.ResolutionMisses.Add(uint64(misses))
	}

	parts := projection.Assemble(self, entries, favorites, senders, profiles)

	// The favorites controller decides toggles against this set.
	s.state.Prime(self, favorites)
	s.monitoring.Loads.Add(1)

	return domain.RosterView{
		Added:       parts.Added,
		NotAdded:    parts.NotAdded,
		Favorites:   parts.Favorites,
		FavoriteIDs: favorites,
		Partial:     partial,
	}, nil
}
