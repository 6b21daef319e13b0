package inventory

import (
	"context"

	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/clock"
	"github.com/essentials/backend/internal/domain/transfer"
	"github.com/google/uuid"
)

// InventoryService handles donations, transfers, and on-hand queries.
// Every write that moves stock goes through the transaction scope so the
// itemizable and its inventory mutation commit together.
type InventoryService struct {
	scope          TransactionScope
	levelRepo      inventory.InventoryLevelRepository
	donationRepo   donation.DonationRepository
	transferRepo   transfer.TransferRepository
	clk            clock.Clock
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	scope TransactionScope,
	levelRepo inventory.InventoryLevelRepository,
	donationRepo donation.DonationRepository,
	transferRepo transfer.TransferRepository,
	clk clock.Clock,
) *InventoryService {
	return &InventoryService{
		scope:        scope,
		levelRepo:    levelRepo,
		donationRepo: donationRepo,
		transferRepo: transferRepo,
		clk:          clk,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// QuantityOnHand returns the on-hand quantity for a location-item tuple.
// A tuple with no level row is simply zero.
func (s *InventoryService) QuantityOnHand(ctx context.Context, organizationID, storageLocationID, itemID uuid.UUID) (int, error) {
	level, err := s.levelRepo.FindByTuple(ctx, organizationID, storageLocationID, itemID)
	if err != nil {
		if shared.ErrorCode(err) == shared.CodeNotFound {
			return 0, nil
		}
		return 0, err
	}
	return level.Quantity, nil
}

// LocationLevels returns every level at a storage location
func (s *InventoryService) LocationLevels(ctx context.Context, organizationID, storageLocationID uuid.UUID) ([]LevelResponse, error) {
	levels, err := s.levelRepo.FindByLocation(ctx, organizationID, storageLocationID)
	if err != nil {
		return nil, err
	}
	return ToLevelResponses(levels), nil
}

// GetDonation retrieves a donation by ID
func (s *InventoryService) GetDonation(ctx context.Context, organizationID, donationID uuid.UUID) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByIDForOrganization(ctx, organizationID, donationID)
	if err != nil {
		return nil, err
	}
	response := ToDonationResponse(d)
	return &response, nil
}

// RecordDonation creates a donation and credits its lines to the target
// location atomically.
func (s *InventoryService) RecordDonation(ctx context.Context, organizationID uuid.UUID, req CreateDonationRequest) (*DonationResponse, error) {
	d, err := donation.NewDonation(organizationID, req.StorageLocationID, donation.Source(req.Source))
	if err != nil {
		return nil, err
	}
	d.Comment = req.Comment
	if req.IssuedAt != nil {
		d.IssuedAt = *req.IssuedAt
	} else {
		d.IssuedAt = s.clk.Now()
	}

	for _, line := range req.Lines {
		if _, err := d.AddLine(line.ItemID, line.Quantity, line.UnitName); err != nil {
			return nil, err
		}
	}
	d.CombineDuplicates()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.DonationRepo().Save(ctx, d); err != nil {
			return err
		}
		return CommitInbound(ctx, repos, d, organizationID, d.StorageLocationID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d.GetDomainEvents())
	d.ClearDomainEvents()

	response := ToDonationResponse(d)
	return &response, nil
}

// DeleteDonation removes a donation and takes its goods back out of the
// location. The removal fails with INSUFFICIENT_INVENTORY when the goods
// have already been distributed onward.
func (s *InventoryService) DeleteDonation(ctx context.Context, organizationID, donationID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DonationRepo().FindByIDForOrganization(ctx, organizationID, donationID)
		if err != nil {
			return err
		}
		if err := ReverseMovements(ctx, repos, organizationID, d.ItemizableType(), d.ID); err != nil {
			return err
		}
		return repos.DonationRepo().Delete(ctx, d.ID)
	})
}

// GetTransfer retrieves a transfer by ID
func (s *InventoryService) GetTransfer(ctx context.Context, organizationID, transferID uuid.UUID) (*TransferResponse, error) {
	t, err := s.transferRepo.FindByIDForOrganization(ctx, organizationID, transferID)
	if err != nil {
		return nil, err
	}
	response := ToTransferResponse(t)
	return &response, nil
}

// RecordTransfer moves goods between two locations atomically: the
// source is deducted with the all-or-nothing reservation rule and the
// destination is credited in the same transaction.
func (s *InventoryService) RecordTransfer(ctx context.Context, organizationID uuid.UUID, req CreateTransferRequest) (*TransferResponse, error) {
	t, err := transfer.NewTransfer(organizationID, req.FromStorageLocationID, req.ToStorageLocationID)
	if err != nil {
		return nil, err
	}
	t.Comment = req.Comment

	for _, line := range req.Lines {
		if _, err := t.AddLine(line.ItemID, line.Quantity, line.UnitName); err != nil {
			return nil, err
		}
	}
	t.CombineDuplicates()
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.TransferRepo().Save(ctx, t); err != nil {
			return err
		}
		if err := CommitOutbound(ctx, repos, t, organizationID, t.FromStorageLocationID); err != nil {
			return err
		}
		return creditTransferDestination(ctx, repos, t, organizationID)
	})
	if err != nil {
		return nil, err
	}

	response := ToTransferResponse(t)
	return &response, nil
}

// DeleteTransfer undoes a transfer on both sides
func (s *InventoryService) DeleteTransfer(ctx context.Context, organizationID, transferID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		t, err := repos.TransferRepo().FindByIDForOrganization(ctx, organizationID, transferID)
		if err != nil {
			return err
		}
		if err := ReverseMovements(ctx, repos, organizationID, t.ItemizableType(), t.ID); err != nil {
			return err
		}
		return repos.TransferRepo().Delete(ctx, t.ID)
	})
}

// creditTransferDestination writes the inbound half of a transfer: the
// destination levels gain what the source just lost.
func creditTransferDestination(ctx context.Context, repos TransactionalRepositories, t *transfer.Transfer, organizationID uuid.UUID) error {
	levels, err := repos.LevelRepo().GetOrCreateForUpdate(ctx, organizationID, t.ToStorageLocationID, t.Lines.ItemIDs())
	if err != nil {
		return err
	}
	for _, line := range t.Lines {
		if err := levels[line.ItemID].Add(line.Quantity); err != nil {
			return err
		}
	}
	if err := saveLevels(ctx, repos, levels); err != nil {
		return err
	}

	movements := make([]inventory.Movement, 0, len(t.Lines))
	for _, line := range t.Lines {
		m, err := inventory.NewMovement(organizationID, t.ToStorageLocationID, line.ItemID,
			line.Quantity, t.ItemizableType(), t.ID)
		if err != nil {
			return err
		}
		movements = append(movements, *m)
	}
	return repos.MovementRepo().Append(ctx, movements)
}

func (s *InventoryService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
