package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryLevelRepository implements InventoryLevelRepository using GORM
type GormInventoryLevelRepository struct {
	db *gorm.DB
}

// NewGormInventoryLevelRepository creates a new GormInventoryLevelRepository
func NewGormInventoryLevelRepository(db *gorm.DB) *GormInventoryLevelRepository {
	return &GormInventoryLevelRepository{db: db}
}

// FindByTuple finds the level for one (organization, location, item) tuple
func (r *GormInventoryLevelRepository) FindByTuple(ctx context.Context, organizationID, storageLocationID, itemID uuid.UUID) (*inventory.InventoryLevel, error) {
	var level inventory.InventoryLevel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND storage_location_id = ? AND item_id = ?",
			organizationID, storageLocationID, itemID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindForUpdate loads the levels for the given items at a location with
// FOR UPDATE row locks, held until the enclosing transaction ends.
func (r *GormInventoryLevelRepository) FindForUpdate(ctx context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	byItem := make(map[uuid.UUID]*inventory.InventoryLevel, len(itemIDs))
	if len(itemIDs) == 0 {
		return byItem, nil
	}

	var levels []inventory.InventoryLevel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND storage_location_id = ? AND item_id IN ?",
			organizationID, storageLocationID, itemIDs).
		Find(&levels).Error; err != nil {
		return nil, err
	}

	for i := range levels {
		byItem[levels[i].ItemID] = &levels[i]
	}
	return byItem, nil
}

// GetOrCreateForUpdate behaves like FindForUpdate but creates missing
// zero-quantity levels first, so inbound movements can land on tuples
// that have never held stock. The insert uses ON CONFLICT DO NOTHING to
// stay race-free against concurrent creators.
func (r *GormInventoryLevelRepository) GetOrCreateForUpdate(ctx context.Context, organizationID, storageLocationID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*inventory.InventoryLevel, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]*inventory.InventoryLevel{}, nil
	}

	existing, err := r.FindForUpdate(ctx, organizationID, storageLocationID, itemIDs)
	if err != nil {
		return nil, err
	}

	missing := make([]*inventory.InventoryLevel, 0)
	for _, itemID := range itemIDs {
		if _, ok := existing[itemID]; ok {
			continue
		}
		level, err := inventory.NewInventoryLevel(organizationID, storageLocationID, itemID)
		if err != nil {
			return nil, err
		}
		missing = append(missing, level)
	}
	if len(missing) == 0 {
		return existing, nil
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_location_id"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		Create(&missing).Error; err != nil {
		return nil, err
	}

	// Re-read with locks so a concurrently created row is picked up
	return r.FindForUpdate(ctx, organizationID, storageLocationID, itemIDs)
}

// FindByLocation finds all levels at a storage location
func (r *GormInventoryLevelRepository) FindByLocation(ctx context.Context, organizationID, storageLocationID uuid.UUID) ([]inventory.InventoryLevel, error) {
	var levels []inventory.InventoryLevel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND storage_location_id = ?", organizationID, storageLocationID).
		Order("item_id ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save creates or updates a level
func (r *GormInventoryLevelRepository) Save(ctx context.Context, level *inventory.InventoryLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// SaveAll persists a batch of levels
func (r *GormInventoryLevelRepository) SaveAll(ctx context.Context, levels []*inventory.InventoryLevel) error {
	for _, level := range levels {
		if err := r.db.WithContext(ctx).Save(level).Error; err != nil {
			return err
		}
	}
	return nil
}

// GormMovementRepository implements the append-only MovementRepository
// using GORM. Movement rows are never updated or deleted.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append inserts movement records
func (r *GormMovementRepository) Append(ctx context.Context, movements []inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

// FindBySource finds all movements caused by one itemizable, oldest first
func (r *GormMovementRepository) FindBySource(ctx context.Context, sourceType string, sourceID uuid.UUID) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Interface assertions
var _ inventory.InventoryLevelRepository = (*GormInventoryLevelRepository)(nil)
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
