package catalog

import (
	"context"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository manages Organization persistence
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	Save(ctx context.Context, org *Organization) error
}

// ItemRepository manages Item persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, organizationID uuid.UUID, ids []uuid.UUID) ([]Item, error)
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StorageLocationRepository manages StorageLocation persistence
type StorageLocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StorageLocation, error)
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*StorageLocation, error)
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]StorageLocation, error)
	Save(ctx context.Context, location *StorageLocation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartnerRepository manages Partner persistence
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*Partner, error)
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Partner, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*PartnerUser, error)
	Save(ctx context.Context, partner *Partner) error
}
