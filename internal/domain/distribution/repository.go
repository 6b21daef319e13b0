package distribution

import (
	"context"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DistributionRepository manages Distribution persistence. Loading a
// distribution hydrates its line items; saving one persists them in the
// same transaction.
type DistributionRepository interface {
	shared.OrgRepository[Distribution]
	FindByQuery(ctx context.Context, organizationID uuid.UUID, query Query) ([]Distribution, error)
	FindByPartner(ctx context.Context, organizationID, partnerID uuid.UUID, filter shared.Filter) ([]Distribution, error)
	CountByQuery(ctx context.Context, organizationID uuid.UUID, query Query) (int64, error)
}

// RequestRepository manages Request persistence including item requests
type RequestRepository interface {
	shared.OrgRepository[Request]
	FindByStatus(ctx context.Context, organizationID uuid.UUID, status RequestStatus, filter shared.Filter) ([]Request, error)
	FindByPartner(ctx context.Context, organizationID, partnerID uuid.UUID, filter shared.Filter) ([]Request, error)
}
