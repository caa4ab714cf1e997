//go:generate go run go.uber.org/mock/mockgen -source=roster.go -destination=../mocks/mock_roster_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IRosterRepository interface {
	Entries(self domain.Identity) ([]domain.RosterEntry, error)
	HasContact(self, target domain.Identity) (bool, error)
	Favorites(self domain.Identity) (domain.FavoriteSet, error)
	AddContact(self, target domain.Identity, at time.Time) error
	AddFavorite(self, target domain.Identity) error
	RemoveFavorite(self, target domain.Identity) error
}

type RosterRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRosterRepository(db *badger.DB, log *slog.Logger) *RosterRepository {
	return &RosterRepository{db: db, log: log}
}

// entryRecord is the persisted value behind a roster key. The contact
// identity lives in the key, so the value only carries the timestamp.
type entryRecord struct {
	AddedAt time.Time `json:"added_at"`
}

func rosterKey(self, target domain.Identity) []byte {
	return []byte(fmt.Sprintf("roster:%s:%s", self, target))
}

func favoriteKey(self, target domain.Identity) []byte {
	return []byte(fmt.Sprintf("fav:%s:%s", self, target))
}

// Entries returns the explicit contacts of self, ordered by (AddedAt,
// Identity). The tiebreak keeps the order deterministic when two contacts
// were added in the same instant; the order is stable across reloads.
func (r RosterRepository) Entries(self domain.Identity) ([]domain.RosterEntry, error) {
	var entries []domain.RosterEntry
	prefixStr := fmt.Sprintf("roster:%s:", self)
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(prefixStr)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			target := domain.Identity(item.Key()[len(prefixStr):])
			err := item.Value(func(val []byte) error {
				var rec entryRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				entries = append(entries, domain.RosterEntry{Identity: target, AddedAt: rec.AddedAt})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: roster entries: %s", apperrors.ErrSourceUnavailable, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].Identity < entries[j].Identity
	})
	return entries, nil
}

func (r RosterRepository) HasContact(self, target domain.Identity) (bool, error) {
	found := false
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(rosterKey(self, target))
		switch err {
		case nil:
			found = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("%w: roster lookup: %s", apperrors.ErrSourceUnavailable, err)
	}
	return found, nil
}

// Favorites returns the favorites overlay of self. An identity that never
// toggled anything gets an empty set, not an error.
func (r RosterRepository) Favorites(self domain.Identity) (domain.FavoriteSet, error) {
	favorites := domain.NewFavoriteSet()
	prefixStr := fmt.Sprintf("fav:%s:", self)
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			target := domain.Identity(it.Item().Key()[len(prefixStr):])
			favorites[target] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: favorites scan: %s", apperrors.ErrSourceUnavailable, err)
	}
	return favorites, nil
}

// AddContact creates the roster entry for target if absent. Re-adding an
// existing contact keeps its original AddedAt, preserving uniqueness by
// identity and the insertion order of the roster.
func (r RosterRepository) AddContact(self, target domain.Identity, at time.Time) error {
	key := rosterKey(self, target)
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		data, err := json.Marshal(entryRecord{AddedAt: at.UTC()})
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: add contact: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}

// AddFavorite is set-union: writing the key again is indistinguishable from
// the first write, so retries and replays never double-apply.
func (r RosterRepository) AddFavorite(self, target domain.Identity) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(favoriteKey(self, target), nil)
	})
	if err != nil {
		return fmt.Errorf("%w: add favorite: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}

// RemoveFavorite is set-difference: deleting an absent key succeeds.
func (r RosterRepository) RemoveFavorite(self, target domain.Identity) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(favoriteKey(self, target))
	})
	if err != nil {
		return fmt.Errorf("%w: remove favorite: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}
