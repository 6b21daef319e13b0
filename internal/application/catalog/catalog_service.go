package catalog

import (
	"context"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService exposes the reference data every itemizable hangs off of:
// the organization, its items with packaging units, storage locations and
// partner agencies. Mutations here never touch inventory.
type CatalogService struct {
	orgRepo      catalog.OrganizationRepository
	itemRepo     catalog.ItemRepository
	locationRepo catalog.StorageLocationRepository
	partnerRepo  catalog.PartnerRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	orgRepo catalog.OrganizationRepository,
	itemRepo catalog.ItemRepository,
	locationRepo catalog.StorageLocationRepository,
	partnerRepo catalog.PartnerRepository,
) *CatalogService {
	return &CatalogService{
		orgRepo:      orgRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		partnerRepo:  partnerRepo,
	}
}

// GetOrganization returns the organization resolved from the request header
func (s *CatalogService) GetOrganization(ctx context.Context, organizationID uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	response := ToOrganizationResponse(org)
	return &response, nil
}

// CreateItem adds a catalog item with its packaging units
func (s *CatalogService) CreateItem(ctx context.Context, organizationID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	category := catalog.ReportingCategory(req.ReportingCategory)
	if req.ReportingCategory == "" {
		category = catalog.CategoryOther
	}

	item, err := catalog.NewItem(organizationID, req.Name, category)
	if err != nil {
		return nil, err
	}
	for _, unit := range req.Units {
		if err := item.AddUnit(unit.Name, unit.PackSize); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetItem retrieves an item by ID
func (s *CatalogService) GetItem(ctx context.Context, organizationID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForOrganization(ctx, organizationID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// ListItems lists the organization's items; the filter can narrow by
// active flag and reporting category.
func (s *CatalogService) ListItems(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAllForOrganization(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// DeactivateItem hides an item from new intake without destroying history
func (s *CatalogService) DeactivateItem(ctx context.Context, organizationID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForOrganization(ctx, organizationID, itemID)
	if err != nil {
		return nil, err
	}

	item.Deactivate()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// CreateStorageLocation adds a storage location
func (s *CatalogService) CreateStorageLocation(ctx context.Context, organizationID uuid.UUID, req CreateStorageLocationRequest) (*StorageLocationResponse, error) {
	location, err := catalog.NewStorageLocation(organizationID, req.Name, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToStorageLocationResponse(location)
	return &response, nil
}

// ListStorageLocations lists the organization's storage locations
func (s *CatalogService) ListStorageLocations(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]StorageLocationResponse, error) {
	locations, err := s.locationRepo.FindAllForOrganization(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	return ToStorageLocationResponses(locations), nil
}

// GetPartner retrieves a partner with its users
func (s *CatalogService) GetPartner(ctx context.Context, organizationID, partnerID uuid.UUID) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByIDForOrganization(ctx, organizationID, partnerID)
	if err != nil {
		return nil, err
	}
	response := ToPartnerResponse(partner)
	return &response, nil
}

// ListPartners lists the organization's partner agencies
func (s *CatalogService) ListPartners(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]PartnerResponse, error) {
	partners, err := s.partnerRepo.FindAllForOrganization(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	return ToPartnerResponses(partners), nil
}
