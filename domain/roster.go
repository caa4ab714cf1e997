package domain

import "time"

// RosterEntry records an explicitly-added contact of the viewing identity.
// The store keeps at most one entry per Identity within a roster.
type RosterEntry struct {
	Identity Identity  `json:"identity"`
	AddedAt  time.Time `json:"added_at"`
}

// FavoriteSet is the favorites overlay of one viewing identity.
type FavoriteSet map[Identity]struct{}

func NewFavoriteSet(ids ...Identity) FavoriteSet {
	set := make(FavoriteSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (f FavoriteSet) Has(id Identity) bool {
	_, ok := f[id]
	return ok
}

// Clone returns an independent copy, never nil.
func (f FavoriteSet) Clone() FavoriteSet {
	out := make(FavoriteSet, len(f))
	for id := range f {
		out[id] = struct{}{}
	}
	return out
}
