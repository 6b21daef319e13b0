package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// effectiveIssuedAt is the reporting date expression: issued-at when set,
// otherwise the creation time.
const effectiveIssuedAt = "COALESCE(issued_at, distributions.created_at)"

// GormDistributionRepository implements DistributionRepository using GORM.
// Loading hydrates line items; saving rewrites them in the same handle,
// which inside a transaction scope means the same transaction.
type GormDistributionRepository struct {
	db *gorm.DB
}

// NewGormDistributionRepository creates a new GormDistributionRepository
func NewGormDistributionRepository(db *gorm.DB) *GormDistributionRepository {
	return &GormDistributionRepository{db: db}
}

// FindByID finds a distribution by its ID
func (r *GormDistributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*distribution.Distribution, error) {
	var d distribution.Distribution
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

// FindByIDForOrganization finds a distribution by ID within an organization
func (r *GormDistributionRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*distribution.Distribution, error) {
	var d distribution.Distribution
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

// FindAll finds all distributions
func (r *GormDistributionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]distribution.Distribution, error) {
	var ds []distribution.Distribution
	query := applyFilter(r.db.WithContext(ctx).Model(&distribution.Distribution{}), filter, DistributionSortFields, "created_at")
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// FindAllForOrganization finds all distributions for an organization
func (r *GormDistributionRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]distribution.Distribution, error) {
	var ds []distribution.Distribution
	query := r.db.WithContext(ctx).Model(&distribution.Distribution{}).
		Where("organization_id = ?", organizationID)
	query = applyFilter(query, filter, DistributionSortFields, "created_at")
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// FindByQuery finds distributions matching the reporting predicates
func (r *GormDistributionRepository) FindByQuery(ctx context.Context, organizationID uuid.UUID, q distribution.Query) ([]distribution.Distribution, error) {
	var ds []distribution.Distribution
	query := r.compile(ctx, organizationID, q)
	if q.OrderByIssuedAtAsc {
		query = query.Order(effectiveIssuedAt + " ASC")
	} else {
		query = query.Order(effectiveIssuedAt + " DESC")
	}
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// CountByQuery counts distributions matching the reporting predicates
func (r *GormDistributionRepository) CountByQuery(ctx context.Context, organizationID uuid.UUID, q distribution.Query) (int64, error) {
	var count int64
	if err := r.compile(ctx, organizationID, q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPartner finds distributions issued to one partner
func (r *GormDistributionRepository) FindByPartner(ctx context.Context, organizationID, partnerID uuid.UUID, filter shared.Filter) ([]distribution.Distribution, error) {
	var ds []distribution.Distribution
	query := r.db.WithContext(ctx).Model(&distribution.Distribution{}).
		Where("organization_id = ? AND partner_id = ?", organizationID, partnerID)
	query = applyFilter(query, filter, DistributionSortFields, "issued_at")
	if err := query.Find(&ds).Error; err != nil {
		return nil, err
	}
	if err := r.hydrateAll(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Save creates or updates a distribution and rewrites its line items
func (r *GormDistributionRepository) Save(ctx context.Context, d *distribution.Distribution) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return err
	}
	return replaceLines(ctx, r.db, d)
}

// Delete deletes a distribution and its line items
func (r *GormDistributionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := deleteLines(ctx, r.db, (&distribution.Distribution{}).ItemizableType(), id); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&distribution.Distribution{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// compile turns a domain query into a GORM query on the effective issue
// date. Item and category predicates check line items via EXISTS so a
// distribution appears once regardless of how many lines match.
func (r *GormDistributionRepository) compile(ctx context.Context, organizationID uuid.UUID, q distribution.Query) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&distribution.Distribution{}).
		Where("distributions.organization_id = ?", organizationID)

	if q.Range != nil {
		if q.Range.StartExclusive {
			query = query.Where(effectiveIssuedAt+" > ?", q.Range.Start)
		} else {
			query = query.Where(effectiveIssuedAt+" >= ?", q.Range.Start)
		}
		query = query.Where(effectiveIssuedAt+" <= ?", q.Range.End)
	}
	if q.PartnerID != nil {
		query = query.Where("partner_id = ?", *q.PartnerID)
	}
	if q.StorageLocationID != nil {
		query = query.Where("storage_location_id = ?", *q.StorageLocationID)
	}
	if q.State != nil {
		query = query.Where("state = ?", *q.State)
	}
	if q.ItemID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM line_items WHERE line_items.itemizable_type = 'Distribution' AND line_items.itemizable_id = distributions.id AND line_items.item_id = ?)",
			*q.ItemID)
	}
	if len(q.ReportingCategories) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM line_items JOIN items ON items.id = line_items.item_id WHERE line_items.itemizable_type = 'Distribution' AND line_items.itemizable_id = distributions.id AND items.reporting_category IN ?)",
			q.ReportingCategories)
	}

	return query
}

func (r *GormDistributionRepository) hydrate(ctx context.Context, d *distribution.Distribution) error {
	lines, err := loadLines(ctx, r.db, d.ItemizableType(), d.ID)
	if err != nil {
		return err
	}
	d.Lines = lines
	return nil
}

func (r *GormDistributionRepository) hydrateAll(ctx context.Context, ds []distribution.Distribution) error {
	if len(ds) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(ds))
	for i := range ds {
		ids[i] = ds[i].ID
	}
	byParent, err := loadLinesForAll(ctx, r.db, (&distribution.Distribution{}).ItemizableType(), ids)
	if err != nil {
		return err
	}
	for i := range ds {
		ds[i].Lines = byParent[ds[i].ID]
	}
	return nil
}

// Ensure GormDistributionRepository implements DistributionRepository
var _ distribution.DistributionRepository = (*GormDistributionRepository)(nil)
