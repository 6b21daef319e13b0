package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and bookkeeping timestamps that every
// persisted aggregate embeds.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh UUID with both timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the entity identity.
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}
