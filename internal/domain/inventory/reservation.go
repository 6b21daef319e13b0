package inventory

import (
	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/google/uuid"
)

// CheckAvailability verifies that every line can be deducted from the
// given levels. All lines are checked before reporting so the error names
// every offending item; nothing is deducted here.
func CheckAvailability(lines itemizable.Lines, levels map[uuid.UUID]*InventoryLevel) error {
	requested := make(map[uuid.UUID]int, len(lines))
	order := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := requested[line.ItemID]; !ok {
			order = append(order, line.ItemID)
		}
		requested[line.ItemID] += line.Quantity
	}

	var shortages []Shortage
	for _, itemID := range order {
		onHand := 0
		if level, ok := levels[itemID]; ok && level != nil {
			onHand = level.Quantity
		}
		if onHand < requested[itemID] {
			shortages = append(shortages, Shortage{
				ItemID:    itemID,
				Requested: requested[itemID],
				OnHand:    onHand,
			})
		}
	}

	if len(shortages) > 0 {
		return NewShortageError(shortages)
	}
	return nil
}

// DeductAll applies every line against the levels after a successful
// availability check. Callers run this inside the same transaction that
// persists the owning itemizable, so either both commit or neither does.
func DeductAll(lines itemizable.Lines, levels map[uuid.UUID]*InventoryLevel) error {
	if err := CheckAvailability(lines, levels); err != nil {
		return err
	}
	for _, line := range lines {
		if err := levels[line.ItemID].Deduct(line.Quantity); err != nil {
			return err
		}
	}
	return nil
}
