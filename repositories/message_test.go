package repositories

import (
	"log/slog"
	"roster-lab/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_DistinctSenders_Deduplicates(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	recipient := domain.Identity("alice")
	at := time.Now().UTC()
	senders := []domain.Identity{"bruno", "clara", "bruno", "bruno", "clara"}
	for i, sender := range senders {
		err := repository.StoreMessage(domain.Message{
			ID:          uuid.New(),
			SenderID:    sender,
			RecipientID: recipient,
			SentAt:      at.Add(time.Duration(i) * time.Second),
			PayloadRef:  "payloads/x",
		})
		req.NoError(err)
	}

	distinct, err := repository.DistinctSenders(recipient)
	req.NoError(err)
	req.Equal(map[domain.Identity]struct{}{
		"bruno": {},
		"clara": {},
	}, distinct)
}

func Test_DistinctSenders_Scoped_To_Recipient(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(domain.Message{
		ID: uuid.New(), SenderID: "bruno", RecipientID: "alice", SentAt: at,
	}))
	req.NoError(repository.StoreMessage(domain.Message{
		ID: uuid.New(), SenderID: "diego", RecipientID: "clara", SentAt: at,
	}))

	distinct, err := repository.DistinctSenders("alice")
	req.NoError(err)
	req.Equal(map[domain.Identity]struct{}{"bruno": {}}, distinct)
}

func Test_DistinctSenders_Empty_Log(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t), slog.Default())

	distinct, err := repository.DistinctSenders("alice")
	req.NoError(err)
	req.Empty(distinct)
}
