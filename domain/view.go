package domain

// Tab is one of the three derived partitions of the contacts view.
// Purely derived, never persisted.
type Tab string

const (
	TabAdded     Tab = "added"
	TabNotAdded  Tab = "not_added"
	TabFavorites Tab = "favorites"
)

// RosterView is the ephemeral, tab-partitioned view of one identity's
// contacts. Recomputed on each load, patched in memory on each favorite
// toggle, never persisted.
//
// Partial is set when the sender index could not be reached: Added and
// Favorites are then still authoritative but NotAdded is empty by
// degradation, not by confirmation.
type RosterView struct {
	Added       []UserProfile
	NotAdded    []UserProfile
	Favorites   []UserProfile
	FavoriteIDs FavoriteSet
	Partial     bool
}
