//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"roster-lab/domain"
	apperrors "roster-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	DistinctSenders(recipient domain.Identity) (map[domain.Identity]struct{}, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

type diskMessage struct {
	Sender     domain.Identity `json:"sender"`
	SentAt     time.Time       `json:"sent_at"`
	PayloadRef string          `json:"payload_ref"`
}

// StoreMessage appends a message to the log.
// The primary key is formatted as "msg:{recipient}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
//
// A secondary key "idx:sender:{recipient}:{sender}" is written in the same
// transaction so that sender enumeration never has to decode values.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.RecipientID,
		message.SentAt.UnixNano(),
		message.ID,
	)
	data, err := json.Marshal(diskMessage{
		Sender:     message.SenderID,
		SentAt:     message.SentAt.UTC(),
		PayloadRef: message.PayloadRef,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal message: %s", apperrors.ErrPersistenceFailed, err)
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		idx := fmt.Sprintf("idx:sender:%s:%s", message.RecipientID, message.SenderID)
		return txn.Set([]byte(idx), nil)
	})
	if err != nil {
		return fmt.Errorf("%w: store message: %s", apperrors.ErrPersistenceFailed, err)
	}
	return nil
}

// DistinctSenders returns every identity that ever sent recipient a message,
// deduplicated regardless of message volume. The scan walks the secondary
// index only, one key per distinct sender.
func (m MessageRepository) DistinctSenders(recipient domain.Identity) (map[domain.Identity]struct{}, error) {
	senders := make(map[domain.Identity]struct{})
	prefixStr := fmt.Sprintf("idx:sender:%s:", recipient)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			sender := domain.Identity(it.Item().Key()[len(prefixStr):])
			senders[sender] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: sender index: %s", apperrors.ErrSourceUnavailable, err)
	}
	return senders, nil
}
