package inventory

import (
	"fmt"
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryLevel is the derived on-hand quantity for one
// (organization, storage location, item) tuple. It is the single source
// of truth validated before any distribution or transfer commits, and it
// can never go negative.
type InventoryLevel struct {
	shared.OrgAggregateRoot
	StorageLocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_level_location_item,priority:2"`
	ItemID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_level_location_item,priority:3"`
	Quantity          int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryLevel) TableName() string {
	return "inventory_levels"
}

// NewInventoryLevel creates an empty level for a location-item tuple
func NewInventoryLevel(organizationID, storageLocationID, itemID uuid.UUID) (*InventoryLevel, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if storageLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Storage location ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item ID cannot be empty")
	}

	return &InventoryLevel{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(organizationID),
		StorageLocationID: storageLocationID,
		ItemID:            itemID,
		Quantity:          0,
	}, nil
}

// CanFulfill returns true if the on-hand quantity covers the request
func (l *InventoryLevel) CanFulfill(quantity int) bool {
	return l.Quantity >= quantity
}

// Add increases the on-hand quantity
func (l *InventoryLevel) Add(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeInvalidQuantity, "Quantity must be positive")
	}

	l.Quantity += quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewStockLevelChangedEvent(l, quantity))
	return nil
}

// Deduct decreases the on-hand quantity. The level never goes negative;
// a shortfall fails the whole operation.
func (l *InventoryLevel) Deduct(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeInvalidQuantity, "Quantity must be positive")
	}
	if l.Quantity < quantity {
		return shared.NewDomainErrorWithDetails(shared.CodeInsufficientInventory,
			fmt.Sprintf("Insufficient inventory for item %s: requested %d, on hand %d", l.ItemID, quantity, l.Quantity),
			[]Shortage{{ItemID: l.ItemID, Requested: quantity, OnHand: l.Quantity}})
	}

	l.Quantity -= quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewStockLevelChangedEvent(l, -quantity))
	return nil
}

// Shortage describes one item that could not be fulfilled
type Shortage struct {
	ItemID    uuid.UUID `json:"item_id"`
	Requested int       `json:"requested"`
	OnHand    int       `json:"on_hand"`
}

// NewShortageError builds the INSUFFICIENT_INVENTORY error naming every
// offending item, so callers can re-present corrected input.
func NewShortageError(shortages []Shortage) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(shared.CodeInsufficientInventory,
		fmt.Sprintf("Insufficient inventory for %d item(s)", len(shortages)), shortages)
}
