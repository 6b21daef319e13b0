package itemizable

import (
	"time"

	"github.com/google/uuid"
)

// Direction is the sign an itemizable applies to inventory when committed
type Direction int

const (
	// DirectionIn adds inventory (donations, transfer arrivals)
	DirectionIn Direction = 1
	// DirectionOut subtracts inventory (distributions, transfer departures)
	DirectionOut Direction = -1
	// DirectionNone leaves inventory untouched (requests are plans)
	DirectionNone Direction = 0
)

// HasLineItems is the capability shared by every entity that owns a
// line-item collection: donations, distributions, transfers and requests.
type HasLineItems interface {
	GetID() uuid.UUID
	ItemizableType() string
	LineItems() Lines
	SetLineItems(lines Lines)
	InventoryDirection() Direction
}

// Total returns the summed quantity across the itemizable's lines
func Total(h HasLineItems) int {
	return h.LineItems().Total()
}

// AddLine appends a validated line item to the itemizable
func AddLine(h HasLineItems, itemID uuid.UUID, quantity int, unitName string) (*LineItem, error) {
	line, err := NewLineItem(h.GetID(), h.ItemizableType(), itemID, quantity, unitName)
	if err != nil {
		return nil, err
	}
	h.SetLineItems(append(h.LineItems(), *line))
	return line, nil
}

// CombineDuplicates merges lines that share an item ID into the first
// occurrence, summing quantities. Order of survivors is the original
// first-occurrence order, which makes repeated invocation a no-op.
func CombineDuplicates(h HasLineItems) {
	lines := h.LineItems()
	if len(lines) < 2 {
		return
	}

	index := make(map[uuid.UUID]int, len(lines))
	combined := make(Lines, 0, len(lines))
	now := time.Now()
	for _, l := range lines {
		if at, ok := index[l.ItemID]; ok {
			combined[at].Quantity += l.Quantity
			combined[at].UpdatedAt = now
			continue
		}
		index[l.ItemID] = len(combined)
		combined = append(combined, l)
	}

	if len(combined) != len(lines) {
		h.SetLineItems(combined)
	}
}

// CopyLineItems duplicates every source line as a new, independent line
// owned by the target, preserving order. The source is not mutated.
// Returns the number of lines copied.
func CopyLineItems(src Lines, into HasLineItems) int {
	if len(src) == 0 {
		return 0
	}

	target := into.LineItems()
	now := time.Now()
	for _, l := range src {
		target = append(target, LineItem{
			ID:            uuid.New(),
			ItemizableID:  into.GetID(),
			ItemizableTyp: into.ItemizableType(),
			ItemID:        l.ItemID,
			Quantity:      l.Quantity,
			UnitName:      l.UnitName,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	into.SetLineItems(target)
	return len(src)
}
