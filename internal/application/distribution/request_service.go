package distribution

import (
	"context"

	appinv "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/clock"
	"github.com/google/uuid"
)

// RequestService handles the partner request lifecycle. Fulfillment
// derives a distribution from the request and commits it in one
// transaction; if the commit fails for any reason the request stays
// started.
type RequestService struct {
	scope          appinv.TransactionScope
	requestRepo    distribution.RequestRepository
	partnerRepo    catalog.PartnerRepository
	clk            clock.Clock
	eventPublisher shared.EventPublisher
}

// NewRequestService creates a new RequestService
func NewRequestService(
	scope appinv.TransactionScope,
	requestRepo distribution.RequestRepository,
	partnerRepo catalog.PartnerRepository,
	clk clock.Clock,
) *RequestService {
	return &RequestService{
		scope:       scope,
		requestRepo: requestRepo,
		partnerRepo: partnerRepo,
		clk:         clk,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create files a new pending request on behalf of a partner
func (s *RequestService) Create(ctx context.Context, organizationID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	r, err := distribution.NewRequest(organizationID, req.PartnerID)
	if err != nil {
		return nil, err
	}
	r.Comments = req.Comments

	if req.PartnerUserID != nil {
		user, err := s.partnerRepo.FindUser(ctx, *req.PartnerUserID)
		if err != nil {
			return nil, err
		}
		r.PartnerUserID = &user.ID
		r.PartnerUser = user
	}

	for _, item := range req.Items {
		if _, err := r.AddItemRequest(item.ItemID, item.Quantity, item.UnitName); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r.GetDomainEvents())
	r.ClearDomainEvents()

	response := ToRequestResponse(r)
	return &response, nil
}

// GetByID retrieves a request by ID
func (s *RequestService) GetByID(ctx context.Context, organizationID, requestID uuid.UUID) (*RequestResponse, error) {
	r, err := s.requestRepo.FindByIDForOrganization(ctx, organizationID, requestID)
	if err != nil {
		return nil, err
	}
	response := ToRequestResponse(r)
	return &response, nil
}

// ListByStatus retrieves requests in one lifecycle status
func (s *RequestService) ListByStatus(ctx context.Context, organizationID uuid.UUID, status distribution.RequestStatus, filter shared.Filter) ([]RequestResponse, error) {
	rs, err := s.requestRepo.FindByStatus(ctx, organizationID, status, filter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(rs), nil
}

// Start marks a pending request as being worked on
func (s *RequestService) Start(ctx context.Context, organizationID, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, organizationID, requestID, (*distribution.Request).Start)
}

// Cancel discards a pending or started request
func (s *RequestService) Cancel(ctx context.Context, organizationID, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, organizationID, requestID, (*distribution.Request).Cancel)
}

// Fulfill turns a started request into a committed distribution. The
// derived distribution copies the request's items, representative, and
// comments; its goods are reserved with the all-or-nothing rule. The
// status transition, the distribution save, and the inventory deduction
// share one transaction, so a shortage rolls everything back and the
// request remains started.
func (s *RequestService) Fulfill(ctx context.Context, organizationID, requestID uuid.UUID, input FulfillRequestInput) (*DistributionResponse, error) {
	method := distribution.DeliveryPickUp
	if input.DeliveryMethod != "" {
		method = distribution.DeliveryMethod(input.DeliveryMethod)
	}

	var d *distribution.Distribution
	var r *distribution.Request
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		r, err = repos.RequestRepo().FindByIDForOrganization(ctx, organizationID, requestID)
		if err != nil {
			return err
		}
		// Fail before touching inventory when the transition is impossible
		if !r.Status.CanTransitionTo(distribution.RequestFulfilled) {
			return shared.NewDomainError(shared.CodeInvalidState,
				"Only started requests can be fulfilled")
		}

		d, err = distribution.NewDistribution(organizationID, r.PartnerID, input.StorageLocationID, method)
		if err != nil {
			return err
		}
		d.CopyFromRequest(r, s.clk)
		d.CombineDuplicates()
		d.Normalize(s.clk)
		if err := d.Validate(s.clk.Now()); err != nil {
			return err
		}

		if err := repos.DistributionRepo().Save(ctx, d); err != nil {
			return err
		}
		if err := appinv.CommitOutbound(ctx, repos, d, organizationID, d.StorageLocationID); err != nil {
			return err
		}

		if err := r.Fulfill(d.ID); err != nil {
			return err
		}
		return repos.RequestRepo().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r.GetDomainEvents())
	s.publishEvents(ctx, d.GetDomainEvents())
	r.ClearDomainEvents()
	d.ClearDomainEvents()

	response := ToDistributionResponse(d)
	return &response, nil
}

func (s *RequestService) transition(ctx context.Context, organizationID, requestID uuid.UUID, apply func(*distribution.Request) error) (*RequestResponse, error) {
	r, err := s.requestRepo.FindByIDForOrganization(ctx, organizationID, requestID)
	if err != nil {
		return nil, err
	}
	if err := apply(r); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r.GetDomainEvents())
	r.ClearDomainEvents()

	response := ToRequestResponse(r)
	return &response, nil
}

func (s *RequestService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
