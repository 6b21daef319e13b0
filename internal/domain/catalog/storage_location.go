package catalog

import (
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StorageLocation is a physical or logical bucket of inventory belonging
// to an organization.
type StorageLocation struct {
	shared.OrgAggregateRoot
	Name    string `gorm:"size:255;not null"`
	Address string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (StorageLocation) TableName() string {
	return "storage_locations"
}

// NewStorageLocation creates a new storage location
func NewStorageLocation(organizationID uuid.UUID, name, address string) (*StorageLocation, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Storage location name cannot be empty")
	}

	return &StorageLocation{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             name,
		Address:          address,
	}, nil
}

// Rename changes the display name
func (s *StorageLocation) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Storage location name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}
