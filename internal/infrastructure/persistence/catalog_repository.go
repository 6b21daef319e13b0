package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by its ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Organization, error) {
	var org catalog.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// Save creates or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *catalog.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).Preload("Units").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForOrganization finds an item by ID within an organization
func (r *GormItemRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).Preload("Units").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDs finds multiple items by their IDs
func (r *GormItemRepository) FindByIDs(ctx context.Context, organizationID uuid.UUID, ids []uuid.UUID) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}

	var items []catalog.Item
	if err := r.db.WithContext(ctx).Preload("Units").
		Where("organization_id = ? AND id IN ?", organizationID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForOrganization finds all items for an organization
func (r *GormItemRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]catalog.Item, error) {
	var items []catalog.Item
	query := r.db.WithContext(ctx).Model(&catalog.Item{}).Preload("Units").
		Where("organization_id = ?", organizationID)
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if category, ok := filter.Filters["reporting_category"]; ok {
		query = query.Where("reporting_category = ?", category)
	}
	query = applyFilter(query, filter, ItemSortFields, "name")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item together with its packaging units
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormStorageLocationRepository implements StorageLocationRepository using GORM
type GormStorageLocationRepository struct {
	db *gorm.DB
}

// NewGormStorageLocationRepository creates a new GormStorageLocationRepository
func NewGormStorageLocationRepository(db *gorm.DB) *GormStorageLocationRepository {
	return &GormStorageLocationRepository{db: db}
}

// FindByID finds a storage location by its ID
func (r *GormStorageLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StorageLocation, error) {
	var location catalog.StorageLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByIDForOrganization finds a storage location by ID within an organization
func (r *GormStorageLocationRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*catalog.StorageLocation, error) {
	var location catalog.StorageLocation
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAllForOrganization finds all storage locations for an organization
func (r *GormStorageLocationRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]catalog.StorageLocation, error) {
	var locations []catalog.StorageLocation
	query := r.db.WithContext(ctx).Model(&catalog.StorageLocation{}).
		Where("organization_id = ?", organizationID)
	query = applyFilter(query, filter, StorageLocationSortFields, "name")

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a storage location
func (r *GormStorageLocationRepository) Save(ctx context.Context, location *catalog.StorageLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a storage location
func (r *GormStorageLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.StorageLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Partner, error) {
	var partner catalog.Partner
	if err := r.db.WithContext(ctx).Preload("Users").First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// FindByIDForOrganization finds a partner by ID within an organization
func (r *GormPartnerRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*catalog.Partner, error) {
	var partner catalog.Partner
	if err := r.db.WithContext(ctx).Preload("Users").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&partner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &partner, nil
}

// FindAllForOrganization finds all partners for an organization
func (r *GormPartnerRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]catalog.Partner, error) {
	var partners []catalog.Partner
	query := r.db.WithContext(ctx).Model(&catalog.Partner{}).Preload("Users").
		Where("organization_id = ?", organizationID)
	query = applyFilter(query, filter, PartnerSortFields, "name")

	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// FindUser finds a partner user by ID
func (r *GormPartnerRepository) FindUser(ctx context.Context, userID uuid.UUID) (*catalog.PartnerUser, error) {
	var user catalog.PartnerUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Save creates or updates a partner together with its users
func (r *GormPartnerRepository) Save(ctx context.Context, partner *catalog.Partner) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(partner).Error
}

// Interface assertions
var _ catalog.OrganizationRepository = (*GormOrganizationRepository)(nil)
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
var _ catalog.StorageLocationRepository = (*GormStorageLocationRepository)(nil)
var _ catalog.PartnerRepository = (*GormPartnerRepository)(nil)
