package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/transfer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var t transfer.Transfer
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByIDForOrganization finds a transfer by ID within an organization
func (r *GormTransferRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*transfer.Transfer, error) {
	var t transfer.Transfer
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindAll finds all transfers
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]transfer.Transfer, error) {
	var ts []transfer.Transfer
	query := applyFilter(r.db.WithContext(ctx).Model(&transfer.Transfer{}), filter, TransferSortFields, "created_at")
	if err := query.Find(&ts).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// FindAllForOrganization finds all transfers for an organization
func (r *GormTransferRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]transfer.Transfer, error) {
	var ts []transfer.Transfer
	query := r.db.WithContext(ctx).Model(&transfer.Transfer{}).
		Where("organization_id = ?", organizationID)
	if locationID, ok := filter.Filters["from_storage_location_id"]; ok {
		query = query.Where("from_storage_location_id = ?", locationID)
	}
	if locationID, ok := filter.Filters["to_storage_location_id"]; ok {
		query = query.Where("to_storage_location_id = ?", locationID)
	}
	query = applyFilter(query, filter, TransferSortFields, "created_at")
	if err := query.Find(&ts).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// Save creates or updates a transfer and rewrites its line items
func (r *GormTransferRepository) Save(ctx context.Context, t *transfer.Transfer) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return err
	}
	return replaceLines(ctx, r.db, t)
}

// Delete deletes a transfer and its line items
func (r *GormTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := deleteLines(ctx, r.db, (&transfer.Transfer{}).ItemizableType(), id); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&transfer.Transfer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTransferRepository) hydrate(ctx context.Context, t *transfer.Transfer) error {
	lines, err := loadLines(ctx, r.db, t.ItemizableType(), t.ID)
	if err != nil {
		return err
	}
	t.Lines = lines
	return nil
}

func (r *GormTransferRepository) hydrateAll(ctx context.Context, ts []transfer.Transfer) error {
	if len(ts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(ts))
	for i := range ts {
		ids[i] = ts[i].ID
	}
	byParent, err := loadLinesForAll(ctx, r.db, (&transfer.Transfer{}).ItemizableType(), ids)
	if err != nil {
		return err
	}
	for i := range ts {
		ts[i].Lines = byParent[ts[i].ID]
	}
	return nil
}

// Ensure GormTransferRepository implements TransferRepository
var _ transfer.TransferRepository = (*GormTransferRepository)(nil)
