//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=../mocks/mock_profile_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"roster-lab/auth"
	"roster-lab/domain"
	apperrors "roster-lab/errors"

	"github.com/dgraph-io/badger/v4"
)

type IProfileRepository interface {
	Put(profile domain.UserProfile) error
	ResolveBatch(ids map[domain.Identity]struct{}) (map[domain.Identity]domain.UserProfile, error)
}

type ProfileRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewProfileRepository(db *badger.DB, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: log}
}

func profileKey(id domain.Identity) []byte {
	return []byte("profile:" + id)
}

func (p ProfileRepository) Put(profile domain.UserProfile) error {
	if err := auth.ValidateProfile(profile); err != nil {
		return err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: marshal profile: %s", apperrors.ErrPersistenceFailed, err)
	}
	err = p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.Identity), data)
	})
	if err != nil {
		return fmt.Errorf("%w: put profile: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}

// ResolveBatch resolves the whole set in a single transaction, one call for
// N identities. Identities with no stored profile are silently omitted from
// the result: a miss for one user must never block the others. Safe to call
// repeatedly with overlapping sets.
func (p ProfileRepository) ResolveBatch(ids map[domain.Identity]struct{}) (map[domain.Identity]domain.UserProfile, error) {
	profiles := make(map[domain.Identity]domain.UserProfile, len(ids))
	err := p.db.View(func(txn *badger.Txn) error {
		for id := range ids {
			item, err := txn.Get(profileKey(id))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				var profile domain.UserProfile
				if err := json.Unmarshal(val, &profile); err != nil {
					return err
				}
				profiles[id] = profile
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: resolve profiles: %s", apperrors.ErrSourceUnavailable, err)
	}
	return profiles, nil
}
