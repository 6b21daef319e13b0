package inventory

import (
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types emitted by the inventory ledger
const (
	EventStockLevelChanged = "inventory.stock_level_changed"
)

// StockLevelChangedEvent is emitted whenever an inventory level moves
type StockLevelChangedEvent struct {
	shared.BaseDomainEvent
	StorageLocationID uuid.UUID `json:"storage_location_id"`
	ItemID            uuid.UUID `json:"item_id"`
	Delta             int       `json:"delta"`
	NewQuantity       int       `json:"new_quantity"`
}

// NewStockLevelChangedEvent creates a StockLevelChangedEvent for a level change
func NewStockLevelChangedEvent(level *InventoryLevel, delta int) *StockLevelChangedEvent {
	return &StockLevelChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventStockLevelChanged, "InventoryLevel", level.ID, level.OrganizationID),
		StorageLocationID: level.StorageLocationID,
		ItemID:            level.ItemID,
		Delta:             delta,
		NewQuantity:       level.Quantity,
	}
}
