// Package projection computes the derived tab partitions from loaded
// sources. Pure set reconciliation: no I/O, no mutation of its inputs.
package projection

import (
	"roster-lab/domain"
	"sort"

	"github.com/samber/lo"
)

// Partitions is the result of one assembly pass.
type Partitions struct {
	Added     []domain.UserProfile
	NotAdded  []domain.UserProfile
	Favorites []domain.UserProfile
}

// Assemble reconciles the roster, the favorites overlay and the distinct
// sender set into the three partitions.
//
//   - Added follows the roster entry order. A roster member whose profile did
//     not resolve still appears, as a stub carrying only the identity: a
//     resolution miss must never make a contact vanish from Added.
//   - NotAdded holds senders outside the roster; unresolved senders are
//     dropped. Self never counts as a sender, even if the message source
//     failed to exclude it.
//   - Favorites is always Added ∩ favorites, in Added order. A favorite flag
//     on an identity no longer in the roster is ignored.
func Assemble(
	self domain.Identity,
	entries []domain.RosterEntry,
	favorites domain.FavoriteSet,
	senders map[domain.Identity]struct{},
	profiles map[domain.Identity]domain.UserProfile,
) Partitions {
	added := lo.Map(entries, func(entry domain.RosterEntry, _ int) domain.UserProfile {
		if profile, ok := profiles[entry.Identity]; ok {
			return profile
		}
		return domain.UserProfile{Identity: entry.Identity}
	})

	inRoster := make(map[domain.Identity]struct{}, len(entries))
	for _, entry := range entries {
		inRoster[entry.Identity] = struct{}{}
	}

	var notAdded []domain.UserProfile
	for _, sender := range sortedIdentities(senders) {
		if sender == self {
			continue
		}
		if _, ok := inRoster[sender]; ok {
			continue
		}
		if profile, ok := profiles[sender]; ok {
			notAdded = append(notAdded, profile)
		}
	}

	favoritesList := lo.Filter(added, func(profile domain.UserProfile, _ int) bool {
		return favorites.Has(profile.Identity)
	})

	return Partitions{Added: added, NotAdded: notAdded, Favorites: favoritesList}
}

// UnknownSenders computes senders \ roster \ {self}: who messaged self but
// is not a contact yet.
func UnknownSenders(
	self domain.Identity,
	entries []domain.RosterEntry,
	senders map[domain.Identity]struct{},
) map[domain.Identity]struct{} {
	inRoster := make(map[domain.Identity]struct{}, len(entries))
	for _, entry := range entries {
		inRoster[entry.Identity] = struct{}{}
	}
	unknown := make(map[domain.Identity]struct{})
	for sender := range senders {
		if sender == self {
			continue
		}
		if _, ok := inRoster[sender]; ok {
			continue
		}
		unknown[sender] = struct{}{}
	}
	return unknown
}

// sortedIdentities gives map iteration a stable order so NotAdded does not
// reshuffle between two loads of identical data.
func sortedIdentities(set map[domain.Identity]struct{}) []domain.Identity {
	ids := lo.Keys(set)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
