package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"

	"github.com/blugelabs/bluge"
)

// ProfileIndex maintains a full-text index over profile display names so
// contacts can be found without knowing their identity. The Badger store
// stays authoritative; the index is derived and rebuildable.
type ProfileIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewProfileIndex(writer *bluge.Writer, log *slog.Logger) *ProfileIndex {
	return &ProfileIndex{writer: writer, log: log}
}

// Index upserts the profile document. Keyed by identity, so re-indexing the
// same profile replaces the previous version.
func (p *ProfileIndex) Index(profile domain.UserProfile) error {
	doc := bluge.NewDocument(string(profile.Identity)).
		AddField(bluge.NewTextField("display_name", profile.DisplayName).StoreValue())
	if err := p.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("%w: index profile: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}

// SearchByName returns the identities whose display name matches term,
// best match first.
func (p *ProfileIndex) SearchByName(ctx context.Context, term string, limit int) ([]domain.Identity, error) {
	reader, err := p.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: index reader: %s", apperrors.ErrSourceUnavailable, err)
	}
	defer reader.Close()

	query := bluge.NewMatchQuery(term).SetField("display_name")
	request := bluge.NewTopNSearch(limit, query)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: index search: %s", apperrors.ErrSourceUnavailable, err)
	}

	var ids []domain.Identity
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: index iterate: %s", apperrors.ErrSourceUnavailable, err)
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, domain.Identity(value))
			}
			return true
		})
		if err != nil {
			return nil, fmt.Errorf("%w: index fields: %s", apperrors.ErrSourceUnavailable, err)
		}
	}
	return ids, nil
}
