package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of the append-only message log.
// Owned by the messaging subsystem; this core only ever reads it.
// Content lives behind PayloadRef and is never inspected here.
type Message struct {
	ID          uuid.UUID
	SenderID    Identity
	RecipientID Identity
	SentAt      time.Time
	PayloadRef  string
}
