package inventory

import (
	"context"

	"github.com/google/uuid"
)

// InventoryLevelRepository manages InventoryLevel persistence
type InventoryLevelRepository interface {
	FindByTuple(ctx context.Context, organizationID, storageLocationID, itemID uuid.UUID) (*InventoryLevel, error)
	// FindForUpdate loads the levels for the given items at a location with
	// row-level locks, so availability checks and deductions read the latest
	// committed quantity within the enclosing transaction.
	FindForUpdate(ctx context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*InventoryLevel, error)
	// GetOrCreateForUpdate behaves like FindForUpdate but creates missing
	// zero-quantity levels, for inbound movements to new tuples.
	GetOrCreateForUpdate(ctx context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*InventoryLevel, error)
	FindByLocation(ctx context.Context, organizationID, storageLocationID uuid.UUID) ([]InventoryLevel, error)
	Save(ctx context.Context, level *InventoryLevel) error
	SaveAll(ctx context.Context, levels []*InventoryLevel) error
}

// MovementRepository is the append-only store of inventory movements
type MovementRepository interface {
	Append(ctx context.Context, movements []Movement) error
	FindBySource(ctx context.Context, sourceType string, sourceID uuid.UUID) ([]Movement, error)
}
