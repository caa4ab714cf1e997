package services

import (
	"roster-lab/domain"
	"sync"
)

// RosterState is the one piece of mutable shared state in the engine: the
// in-memory favorites overlay, keyed by viewing identity. Load primes it,
// Toggle patches it optimistically, Drop discards it when a session ends.
//
// In-flight toggle bookkeeping is keyed by (self, target) so two rapid
// toggles of the same target serialize their optimistic-then-confirm phases,
// while toggles of different targets stay independent.
type RosterState struct {
	mu    sync.Mutex
	sets  map[domain.Identity]domain.FavoriteSet
	locks map[string]*sync.Mutex
}

func NewRosterState() *RosterState {
	return &RosterState{
		sets:  make(map[domain.Identity]domain.FavoriteSet),
		locks: make(map[string]*sync.Mutex),
	}
}

// Prime replaces the favorites set of self with a fresh load.
func (s *RosterState) Prime(self domain.Identity, favorites domain.FavoriteSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[self] = favorites.Clone()
}

// Snapshot returns an independent copy of the current set of self.
func (s *RosterState) Snapshot(self domain.Identity) domain.FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[self].Clone()
}

// Apply patches the in-memory set. Idempotent in both directions.
func (s *RosterState) Apply(self, target domain.Identity, favorite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[self]
	if !ok {
		set = domain.NewFavoriteSet()
		s.sets[self] = set
	}
	if favorite {
		set[target] = struct{}{}
	} else {
		delete(set, target)
	}
}

// Drop discards everything held for self. A late toggle completion for a
// dropped identity re-creates an entry only for that same identity, never
// for another one.
func (s *RosterState) Drop(self domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, self)
}

// LockTarget serializes in-flight toggles per (self, target) pair. Returns
// the unlock function.
func (s *RosterState) LockTarget(self, target domain.Identity) func() {
	key := string(self) + "\x00" + string(target)
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
