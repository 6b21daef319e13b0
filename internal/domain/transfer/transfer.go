package transfer

import (
	"time"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Transfer moves goods between two storage locations of the same
// organization. Committing one deducts the source and credits the
// destination in a single transaction.
type Transfer struct {
	shared.OrgAggregateRoot
	FromStorageLocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ToStorageLocationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Comment               string    `gorm:"type:text"`

	Lines itemizable.Lines `gorm:"-"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "transfers"
}

// NewTransfer creates a transfer between two distinct locations
func NewTransfer(organizationID, fromLocationID, toLocationID uuid.UUID) (*Transfer, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if fromLocationID == uuid.Nil || toLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Both storage locations are required")
	}
	if fromLocationID == toLocationID {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Cannot transfer a storage location to itself")
	}

	return &Transfer{
		OrgAggregateRoot:      shared.NewOrgAggregateRoot(organizationID),
		FromStorageLocationID: fromLocationID,
		ToStorageLocationID:   toLocationID,
		Lines:                 make(itemizable.Lines, 0),
	}, nil
}

// ItemizableType identifies transfers on shared line-item rows
func (t *Transfer) ItemizableType() string {
	return "Transfer"
}

// LineItems returns the line-item collection
func (t *Transfer) LineItems() itemizable.Lines {
	return t.Lines
}

// SetLineItems replaces the line-item collection
func (t *Transfer) SetLineItems(lines itemizable.Lines) {
	t.Lines = lines
	t.UpdatedAt = time.Now()
}

// InventoryDirection returns the sign applied at the source location.
// The destination side is the inverse, handled by the movement planner.
func (t *Transfer) InventoryDirection() itemizable.Direction {
	return itemizable.DirectionOut
}

// AddLine appends a line item; quantity must be a positive integer
func (t *Transfer) AddLine(itemID uuid.UUID, quantity int, unitName string) (*itemizable.LineItem, error) {
	return itemizable.AddLine(t, itemID, quantity, unitName)
}

// CombineDuplicates merges lines sharing an item ID. Idempotent.
func (t *Transfer) CombineDuplicates() {
	itemizable.CombineDuplicates(t)
}

// Validate enforces the transfer invariants
func (t *Transfer) Validate() error {
	if t.FromStorageLocationID == t.ToStorageLocationID {
		return shared.NewDomainError(shared.CodeInvalidInput, "Cannot transfer a storage location to itself")
	}
	return t.Lines.Validate()
}
