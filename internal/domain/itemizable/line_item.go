package itemizable

import (
	"fmt"
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LineItem is an (item, quantity, optional unit) record attached to an
// itemizable. Quantities are whole pieces; pack-unit display happens at
// the export edge.
type LineItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemizableID  uuid.UUID `gorm:"type:uuid;not null;index:idx_line_items_itemizable"`
	ItemizableTyp string    `gorm:"column:itemizable_type;size:50;not null;index:idx_line_items_itemizable"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"not null"`
	UnitName      string    `gorm:"size:50"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "line_items"
}

// NewLineItem creates a line item for the given parent.
// The quantity must be a positive integer.
func NewLineItem(parentID uuid.UUID, parentType string, itemID uuid.UUID, quantity int, unitName string) (*LineItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity, "Line item quantity must be a positive integer")
	}

	now := time.Now()
	return &LineItem{
		ID:            uuid.New(),
		ItemizableID:  parentID,
		ItemizableTyp: parentType,
		ItemID:        itemID,
		Quantity:      quantity,
		UnitName:      unitName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Validate checks the line item invariants
func (l *LineItem) Validate() error {
	if l.ItemID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Line item has no item")
	}
	if l.Quantity <= 0 {
		return shared.NewDomainError(shared.CodeInvalidQuantity,
			fmt.Sprintf("Line item for item %s has non-positive quantity %d", l.ItemID, l.Quantity))
	}
	return nil
}

// Lines is a collection of line items belonging to one itemizable
type Lines []LineItem

// Total sums the quantities across the collection, including uncommitted
// edits held in memory.
func (ls Lines) Total() int {
	total := 0
	for _, l := range ls {
		total += l.Quantity
	}
	return total
}

// QuantityFor returns the summed quantity for a single item
func (ls Lines) QuantityFor(itemID uuid.UUID) int {
	total := 0
	for _, l := range ls {
		if l.ItemID == itemID {
			total += l.Quantity
		}
	}
	return total
}

// ItemIDs returns the distinct item IDs in first-occurrence order
func (ls Lines) ItemIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ls))
	ids := make([]uuid.UUID, 0, len(ls))
	for _, l := range ls {
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	return ids
}

// Validate checks every line; the first invalid child is surfaced through
// a VALIDATION_AGGREGATE error so the parent save fails atomically.
func (ls Lines) Validate() error {
	for _, l := range ls {
		if err := l.Validate(); err != nil {
			return shared.NewDomainErrorWithDetails(shared.CodeValidationAggregate,
				"One or more line items are invalid", err.Error())
		}
	}
	return nil
}
