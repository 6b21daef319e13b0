package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDonationRepository implements DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var d donation.Donation
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByIDForOrganization finds a donation by ID within an organization
func (r *GormDonationRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*donation.Donation, error) {
	var d donation.Donation
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindAll finds all donations
func (r *GormDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]donation.Donation, error) {
	var ds []donation.Donation
	query := applyFilter(r.db.WithContext(ctx).Model(&donation.Donation{}), filter, DonationSortFields, "created_at")
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// FindAllForOrganization finds all donations for an organization
func (r *GormDonationRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]donation.Donation, error) {
	var ds []donation.Donation
	query := r.db.WithContext(ctx).Model(&donation.Donation{}).
		Where("organization_id = ?", organizationID)
	if source, ok := filter.Filters["source"]; ok {
		query = query.Where("source = ?", source)
	}
	if locationID, ok := filter.Filters["storage_location_id"]; ok {
		query = query.Where("storage_location_id = ?", locationID)
	}
	query = applyFilter(query, filter, DonationSortFields, "created_at")
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Save creates or updates a donation and rewrites its line items
func (r *GormDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return err
	}
	return replaceLines(ctx, r.db, d)
}

// Delete deletes a donation and its line items
func (r *GormDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := deleteLines(ctx, r.db, (&donation.Donation{}).ItemizableType(), id); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&donation.Donation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDonationRepository) hydrate(ctx context.Context, d *donation.Donation) error {
	lines, err := loadLines(ctx, r.db, d.ItemizableType(), d.ID)
	if err != nil {
		return err
	}
	d.Lines = lines
	return nil
}

func (r *GormDonationRepository) hydrateAll(ctx context.Context, ds []donation.Donation) error {
	if len(ds) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(ds))
	for i := range ds {
		ids[i] = ds[i].ID
	}
	byParent, err := loadLinesForAll(ctx, r.db, (&donation.Donation{}).ItemizableType(), ids)
	if err != nil {
		return err
	}
	for i := range ds {
		ds[i].Lines = byParent[ds[i].ID]
	}
	return nil
}

// Ensure GormDonationRepository implements DonationRepository
var _ donation.DonationRepository = (*GormDonationRepository)(nil)
