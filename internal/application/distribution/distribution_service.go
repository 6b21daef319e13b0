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

// csvHeader is the first row of every distribution export
var csvHeader = []string{
	"Partner", "Issued At", "Storage Location", "Total Items", "",
	"Delivery Method", "State", "Agency Representative",
}

// DistributionService handles scheduling, editing, and reporting of
// distributions. Every commit runs inside the transaction scope so the
// distribution row and its inventory deduction are inseparable.
type DistributionService struct {
	scope            appinv.TransactionScope
	distributionRepo distribution.DistributionRepository
	partnerRepo      catalog.PartnerRepository
	locationRepo     catalog.StorageLocationRepository
	clk              clock.Clock
	eventPublisher   shared.EventPublisher
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(
	scope appinv.TransactionScope,
	distributionRepo distribution.DistributionRepository,
	partnerRepo catalog.PartnerRepository,
	locationRepo catalog.StorageLocationRepository,
	clk clock.Clock,
) *DistributionService {
	return &DistributionService{
		scope:            scope,
		distributionRepo: distributionRepo,
		partnerRepo:      partnerRepo,
		locationRepo:     locationRepo,
		clk:              clk,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DistributionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create schedules a distribution and reserves its goods atomically.
// A shortage anywhere in the line set aborts the whole commit with every
// offending item named.
func (s *DistributionService) Create(ctx context.Context, organizationID uuid.UUID, req CreateDistributionRequest) (*DistributionResponse, error) {
	d, err := distribution.NewDistribution(organizationID, req.PartnerID, req.StorageLocationID,
		distribution.DeliveryMethod(req.DeliveryMethod))
	if err != nil {
		return nil, err
	}
	if req.IssuedAt != nil {
		d.IssuedAt = *req.IssuedAt
	}
	d.ShippingCost = req.ShippingCost
	d.AgencyRep = req.AgencyRep
	d.Comment = req.Comment
	d.ReminderEmailEnabled = req.ReminderEmailEnabled

	for _, line := range req.Lines {
		if _, err := d.AddLine(line.ItemID, line.Quantity, line.UnitName); err != nil {
			return nil, err
		}
	}
	d.CombineDuplicates()
	d.Normalize(s.clk)
	if err := d.Validate(s.clk.Now()); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.DistributionRepo().Save(ctx, d); err != nil {
			return err
		}
		return appinv.CommitOutbound(ctx, repos, d, organizationID, d.StorageLocationID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d.GetDomainEvents())
	d.ClearDomainEvents()

	response := ToDistributionResponse(d)
	return &response, nil
}

// GetByID retrieves a distribution by ID
func (s *DistributionService) GetByID(ctx context.Context, organizationID, distributionID uuid.UUID) (*DistributionResponse, error) {
	d, err := s.distributionRepo.FindByIDForOrganization(ctx, organizationID, distributionID)
	if err != nil {
		return nil, err
	}
	response := ToDistributionResponse(d)
	return &response, nil
}

// List retrieves distributions matching the reporting predicates
func (s *DistributionService) List(ctx context.Context, organizationID uuid.UUID, q ListQuery) ([]DistributionResponse, error) {
	ds, err := s.distributionRepo.FindByQuery(ctx, organizationID, s.buildQuery(q))
	if err != nil {
		return nil, err
	}
	return ToDistributionResponses(ds), nil
}

// Update edits a committed distribution. The prior reservation is fully
// reversed before the new line set is validated and re-reserved, so
// reducing a quantity never fails against the stock the distribution
// itself is holding.
func (s *DistributionService) Update(ctx context.Context, organizationID, distributionID uuid.UUID, req UpdateDistributionRequest) (*DistributionResponse, error) {
	var d *distribution.Distribution
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		d, err = repos.DistributionRepo().FindByIDForOrganization(ctx, organizationID, distributionID)
		if err != nil {
			return err
		}
		if d.State != distribution.StateScheduled {
			return shared.NewDomainError(shared.CodeInvalidState, "Only scheduled distributions can be edited")
		}

		if err := appinv.ReverseMovements(ctx, repos, organizationID, d.ItemizableType(), d.ID); err != nil {
			return err
		}

		if req.StorageLocationID != nil {
			d.StorageLocationID = *req.StorageLocationID
		}
		if req.DeliveryMethod != nil {
			d.DeliveryMethod = distribution.DeliveryMethod(*req.DeliveryMethod)
		}
		if req.ShippingCost != nil {
			d.ShippingCost = req.ShippingCost
		}
		if req.IssuedAt != nil {
			d.IssuedAt = *req.IssuedAt
		}
		if req.AgencyRep != nil {
			d.AgencyRep = *req.AgencyRep
		}
		if req.Comment != nil {
			d.Comment = *req.Comment
		}
		if req.ReminderEmailEnabled != nil {
			d.ReminderEmailEnabled = *req.ReminderEmailEnabled
		}
		if req.Lines != nil {
			d.SetLineItems(nil)
			for _, line := range req.Lines {
				if _, err := d.AddLine(line.ItemID, line.Quantity, line.UnitName); err != nil {
					return err
				}
			}
		}

		d.CombineDuplicates()
		d.Normalize(s.clk)
		if err := d.Validate(s.clk.Now()); err != nil {
			return err
		}

		if err := appinv.CommitOutbound(ctx, repos, d, organizationID, d.StorageLocationID); err != nil {
			return err
		}
		return repos.DistributionRepo().Save(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	response := ToDistributionResponse(d)
	return &response, nil
}

// Delete removes a distribution and restores the reserved quantities
// exactly.
func (s *DistributionService) Delete(ctx context.Context, organizationID, distributionID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		d, err := repos.DistributionRepo().FindByIDForOrganization(ctx, organizationID, distributionID)
		if err != nil {
			return err
		}
		if err := appinv.ReverseMovements(ctx, repos, organizationID, d.ItemizableType(), d.ID); err != nil {
			return err
		}
		return repos.DistributionRepo().Delete(ctx, d.ID)
	})
}

// Complete marks a distribution as handed over
func (s *DistributionService) Complete(ctx context.Context, organizationID, distributionID uuid.UUID) (*DistributionResponse, error) {
	d, err := s.distributionRepo.FindByIDForOrganization(ctx, organizationID, distributionID)
	if err != nil {
		return nil, err
	}
	if err := d.Complete(); err != nil {
		return nil, err
	}
	if err := s.distributionRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d.GetDomainEvents())
	d.ClearDomainEvents()

	response := ToDistributionResponse(d)
	return &response, nil
}

// CSVExport renders the matching distributions as export rows, header
// included. Partner and location names are resolved once per ID.
func (s *DistributionService) CSVExport(ctx context.Context, organizationID uuid.UUID, q ListQuery) ([][]string, error) {
	ds, err := s.distributionRepo.FindByQuery(ctx, organizationID, s.buildQuery(q))
	if err != nil {
		return nil, err
	}

	partnerNames := make(map[uuid.UUID]string)
	locationNames := make(map[uuid.UUID]string)

	rows := make([][]string, 0, len(ds)+1)
	rows = append(rows, csvHeader)
	for i := range ds {
		d := &ds[i]

		partnerName, ok := partnerNames[d.PartnerID]
		if !ok {
			partner, err := s.partnerRepo.FindByIDForOrganization(ctx, organizationID, d.PartnerID)
			if err != nil {
				return nil, err
			}
			partnerName = partner.Name
			partnerNames[d.PartnerID] = partnerName
		}

		locationName, ok := locationNames[d.StorageLocationID]
		if !ok {
			location, err := s.locationRepo.FindByIDForOrganization(ctx, organizationID, d.StorageLocationID)
			if err != nil {
				return nil, err
			}
			locationName = location.Name
			locationNames[d.StorageLocationID] = locationName
		}

		rows = append(rows, d.CSVExportAttributes(partnerName, locationName))
	}
	return rows, nil
}

func (s *DistributionService) buildQuery(q ListQuery) distribution.Query {
	query := distribution.Query{}

	switch {
	case q.ThisWeek:
		query = query.ThisWeek(s.clk.Now())
	case q.Last12Months:
		query = query.InLast12Months(s.clk.Now())
	case q.StartDate != nil && q.EndDate != nil:
		query = query.During(*q.StartDate, *q.EndDate)
	}

	if q.ItemID != nil {
		query = query.ByItem(*q.ItemID)
	}
	if q.PartnerID != nil {
		query = query.ByPartner(*q.PartnerID)
	}
	if q.StorageLocationID != nil {
		query = query.ByStorageLocation(*q.StorageLocationID)
	}
	if q.State != nil {
		query = query.ByState(distribution.State(*q.State))
	}
	if q.Diapers {
		query = query.WithDiapers()
	}
	if q.PeriodSupplies {
		query = query.WithPeriodSupplies()
	}
	return query
}

func (s *DistributionService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
