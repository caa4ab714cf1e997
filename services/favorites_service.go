package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"
	"roster-lab/observability"
	"roster-lab/repositories"
)

type IFavoritesService interface {
	Toggle(ctx context.Context, self, target domain.Identity) (domain.FavoriteSet, error)
	Drop(self domain.Identity)
}

// FavoritesService applies optimistic mutations to the in-memory favorites
// overlay and reconciles them against the store.
type FavoritesService struct {
	log        *slog.Logger
	roster     repositories.IRosterRepository
	state      *RosterState
	monitoring *observability.Monitoring
}

func NewFavoritesService(
	log *slog.Logger,
	roster repositories.IRosterRepository,
	state *RosterState,
	monitoring *observability.Monitoring,
) *FavoritesService {
	return &FavoritesService{log: log, roster: roster, state: state, monitoring: monitoring}
}

// Toggle flips the favorite flag of target for self and returns the
// favorites set after the mutation.
//
// The in-memory set is patched before the store call so the view reflects
// the change immediately. If the store call fails or the context ends first,
// the patch is reverted and ErrPersistenceFailed surfaces: the caller sees
// the pre-toggle set, never the attempted one. The store primitives are
// set-union/set-difference, so the abandoned write of a cancelled toggle is
// harmless if it lands anyway.
//
// Toggling an identity that is not in the roster is a no-op: favorites only
// mean something for added contacts. Removal is allowed regardless, so a
// dangling flag can always be cleared.
func (s *FavoritesService) Toggle(ctx context.Context, self, target domain.Identity) (domain.FavoriteSet, error) {
	if self.IsZero() {
		return nil, apperrors.ErrNoSession
	}

	unlock := s.state.LockTarget(self, target)
	defer unlock()

	before := s.state.Snapshot(self)
	adding := !before.Has(target)

	if adding {
		known, err := s.roster.HasContact(self, target)
		if err != nil {
			return before, err
		}
		if !known {
			s.log.Debug("favorite toggle ignored, target not in roster",
				"self", self, "target", target)
			return before, nil
		}
	}

	// Optimistic: patch first, confirm after.
	s.state.Apply(self, target, adding)

	mutate := s.roster.AddFavorite
	if !adding {
		mutate = s.roster.RemoveFavorite
	}

	done := make(chan error, 1)
	go func() {
		done <- mutate(self, target)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		s.state.Apply(self, target, !adding)
		s.monitoring.Reverts.Add(1)
		s.log.Warn("favorite toggle reverted",
			"self", self, "target", target, "adding", adding, "error", err)
		if !errors.Is(err, apperrors.ErrPersistenceFailed) {
			// Timeouts and cancellations surface the same way as store
			// failures: the change did not durably apply.
			err = fmt.Errorf("%w: %s", apperrors.ErrPersistenceFailed, err)
		}
		return before, fmt.Errorf("toggle %s: %w", target, err)
	}

	s.monitoring.Toggles.Add(1)
	return s.state.Snapshot(self), nil
}

// Drop discards the in-memory state of self, on logout or navigation away.
func (s *FavoritesService) Drop(self domain.Identity) {
	s.state.Drop(self)
}
