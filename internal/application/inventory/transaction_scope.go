package inventory

import (
	"context"

	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/transfer"
)

// TransactionScope provides transactional access to the repositories an
// inventory-moving operation touches. Everything executed within one
// scope commits or rolls back atomically, which is what keeps a saved
// itemizable and its inventory deduction inseparable.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction. Level rows loaded through LevelRepo's
// ForUpdate methods hold row-level locks until the scope ends.
type TransactionalRepositories interface {
	// LevelRepo returns the inventory level repository scoped to the current transaction
	LevelRepo() inventory.InventoryLevelRepository
	// MovementRepo returns the append-only movement repository scoped to the current transaction
	MovementRepo() inventory.MovementRepository
	// DistributionRepo returns the distribution repository scoped to the current transaction
	DistributionRepo() distribution.DistributionRepository
	// RequestRepo returns the partner request repository scoped to the current transaction
	RequestRepo() distribution.RequestRepository
	// DonationRepo returns the donation repository scoped to the current transaction
	DonationRepo() donation.DonationRepository
	// TransferRepo returns the transfer repository scoped to the current transaction
	TransferRepo() transfer.TransferRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	levelRepo        inventory.InventoryLevelRepository
	movementRepo     inventory.MovementRepository
	distributionRepo distribution.DistributionRepository
	requestRepo      distribution.RequestRepository
	donationRepo     donation.DonationRepository
	transferRepo     transfer.TransferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	levelRepo inventory.InventoryLevelRepository,
	movementRepo inventory.MovementRepository,
	distributionRepo distribution.DistributionRepository,
	requestRepo distribution.RequestRepository,
	donationRepo donation.DonationRepository,
	transferRepo transfer.TransferRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		levelRepo:        levelRepo,
		movementRepo:     movementRepo,
		distributionRepo: distributionRepo,
		requestRepo:      requestRepo,
		donationRepo:     donationRepo,
		transferRepo:     transferRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LevelRepo returns the inventory level repository.
func (s *NoOpTransactionScope) LevelRepo() inventory.InventoryLevelRepository {
	return s.levelRepo
}

// MovementRepo returns the movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

// DistributionRepo returns the distribution repository.
func (s *NoOpTransactionScope) DistributionRepo() distribution.DistributionRepository {
	return s.distributionRepo
}

// RequestRepo returns the partner request repository.
func (s *NoOpTransactionScope) RequestRepo() distribution.RequestRepository {
	return s.requestRepo
}

// DonationRepo returns the donation repository.
func (s *NoOpTransactionScope) DonationRepo() donation.DonationRepository {
	return s.donationRepo
}

// TransferRepo returns the transfer repository.
func (s *NoOpTransactionScope) TransferRepo() transfer.TransferRepository {
	return s.transferRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
