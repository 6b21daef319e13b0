package persistence

import (
	"context"
	"errors"

	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM. Requests
// load with their item requests and the filing partner user preloaded.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ItemRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_requests.created_at ASC")
		}).
		Preload("PartnerUser")
}

// FindByID finds a request by its ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*distribution.Request, error) {
	var req distribution.Request
	if err := r.preloaded(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindByIDForOrganization finds a request by ID within an organization
func (r *GormRequestRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*distribution.Request, error) {
	var req distribution.Request
	if err := r.preloaded(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindAll finds all requests
func (r *GormRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]distribution.Request, error) {
	var reqs []distribution.Request
	query := applyFilter(r.preloaded(ctx).Model(&distribution.Request{}), filter, RequestSortFields, "created_at")
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// FindAllForOrganization finds all requests for an organization
func (r *GormRequestRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]distribution.Request, error) {
	var reqs []distribution.Request
	query := r.preloaded(ctx).Model(&distribution.Request{}).
		Where("organization_id = ?", organizationID)
	query = applyFilter(query, filter, RequestSortFields, "created_at")
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// FindByStatus finds requests in one lifecycle status
func (r *GormRequestRepository) FindByStatus(ctx context.Context, organizationID uuid.UUID, status distribution.RequestStatus, filter shared.Filter) ([]distribution.Request, error) {
	var reqs []distribution.Request
	query := r.preloaded(ctx).Model(&distribution.Request{}).
		Where("organization_id = ? AND status = ?", organizationID, status)
	query = applyFilter(query, filter, RequestSortFields, "created_at")
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// FindByPartner finds requests filed by one partner
func (r *GormRequestRepository) FindByPartner(ctx context.Context, organizationID, partnerID uuid.UUID, filter shared.Filter) ([]distribution.Request, error) {
	var reqs []distribution.Request
	query := r.preloaded(ctx).Model(&distribution.Request{}).
		Where("organization_id = ? AND partner_id = ?", organizationID, partnerID)
	query = applyFilter(query, filter, RequestSortFields, "created_at")
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// Save creates or updates a request and its item requests
func (r *GormRequestRepository) Save(ctx context.Context, req *distribution.Request) error {
	// The partner user is a catalog row this aggregate only references
	return r.db.WithContext(ctx).
		Omit("PartnerUser").
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(req).Error
}

// Delete deletes a request and its item requests
func (r *GormRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		Delete(&distribution.ItemRequest{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&distribution.Request{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRequestRepository implements RequestRepository
var _ distribution.RequestRepository = (*GormRequestRepository)(nil)
