package persistence

import (
	"context"
	"errors"

	appinv "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to the callback shares one transaction, so a
// saved itemizable, its level changes, and its movement records commit or
// roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
	return translateWriteConflict(err)
}

// sqlStater is the interface the postgres driver errors expose their
// SQLSTATE code through.
type sqlStater interface {
	SQLState() string
}

// translateWriteConflict maps store-level write conflicts onto the
// retryable domain error so callers can distinguish them from real
// failures. Postgres reports serialization failures as SQLSTATE 40001
// and deadlocks as 40P01.
func translateWriteConflict(err error) error {
	if err == nil {
		return nil
	}
	var stater sqlStater
	if errors.As(err, &stater) {
		switch stater.SQLState() {
		case "40001", "40P01":
			return shared.ErrConcurrentModification
		}
	}
	return err
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// LevelRepo returns the inventory level repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LevelRepo() inventory.InventoryLevelRepository {
	return NewGormInventoryLevelRepository(r.tx)
}

// MovementRepo returns the movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// DistributionRepo returns the distribution repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DistributionRepo() distribution.DistributionRepository {
	return NewGormDistributionRepository(r.tx)
}

// RequestRepo returns the partner request repository scoped to the current transaction.
func (r *gormTransactionalRepositories) RequestRepo() distribution.RequestRepository {
	return NewGormRequestRepository(r.tx)
}

// DonationRepo returns the donation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DonationRepo() donation.DonationRepository {
	return NewGormDonationRepository(r.tx)
}

// TransferRepo returns the transfer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TransferRepo() transfer.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
