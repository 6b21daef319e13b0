package inventory

import (
	"time"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Movement is an append-only record of one signed inventory change,
// written in the same transaction as the itemizable that caused it.
// Replaying all movements for a tuple reproduces its InventoryLevel.
type Movement struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageLocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_movements_location_item"`
	ItemID            uuid.UUID `gorm:"type:uuid;not null;index:idx_movements_location_item"`
	Quantity          int       `gorm:"not null"` // signed: + in, - out
	SourceType        string    `gorm:"size:50;not null"`
	SourceID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "inventory_movements"
}

// NewMovement records a signed quantity change caused by an itemizable
func NewMovement(organizationID, storageLocationID, itemID uuid.UUID, quantity int, sourceType string, sourceID uuid.UUID) (*Movement, error) {
	if quantity == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity, "Movement quantity cannot be zero")
	}
	if sourceType == "" || sourceID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Movement source is required")
	}

	return &Movement{
		ID:                uuid.New(),
		OrganizationID:    organizationID,
		StorageLocationID: storageLocationID,
		ItemID:            itemID,
		Quantity:          quantity,
		SourceType:        sourceType,
		SourceID:          sourceID,
		CreatedAt:         time.Now(),
	}, nil
}

// MovementsFor builds the signed movement records for an itemizable's
// lines at a storage location, using the itemizable's inventory direction.
// Combine duplicates on the parent first so each item yields one movement.
func MovementsFor(h itemizable.HasLineItems, organizationID, storageLocationID uuid.UUID) ([]Movement, error) {
	direction := h.InventoryDirection()
	if direction == itemizable.DirectionNone {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Itemizable does not move inventory")
	}

	lines := h.LineItems()
	movements := make([]Movement, 0, len(lines))
	for _, line := range lines {
		m, err := NewMovement(organizationID, storageLocationID, line.ItemID,
			int(direction)*line.Quantity, h.ItemizableType(), h.GetID())
		if err != nil {
			return nil, err
		}
		movements = append(movements, *m)
	}
	return movements, nil
}

// Inverse returns a movement that exactly undoes this one, used when a
// committed itemizable is edited or deleted.
func (m Movement) Inverse() Movement {
	return Movement{
		ID:                uuid.New(),
		OrganizationID:    m.OrganizationID,
		StorageLocationID: m.StorageLocationID,
		ItemID:            m.ItemID,
		Quantity:          -m.Quantity,
		SourceType:        m.SourceType,
		SourceID:          m.SourceID,
		CreatedAt:         time.Now(),
	}
}
