package donation

import (
	"time"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Source records where a donation came from
type Source string

const (
	SourceDonationSite Source = "donation_site"
	SourceProductDrive Source = "product_drive"
	SourceManufacturer Source = "manufacturer"
	SourceMisc         Source = "misc"
)

// IsValid checks if the source is a known Source
func (s Source) IsValid() bool {
	switch s {
	case SourceDonationSite, SourceProductDrive, SourceManufacturer, SourceMisc:
		return true
	}
	return false
}

// String returns the string representation of the source
func (s Source) String() string {
	return string(s)
}

// Donation is inbound goods received into a storage location. Committing
// one adds its lines to the location's inventory; deleting one removes
// them again.
type Donation struct {
	shared.OrgAggregateRoot
	StorageLocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Source            Source    `gorm:"size:30;not null;default:'misc'"`
	IssuedAt          time.Time `gorm:"index"`
	Comment           string    `gorm:"type:text"`

	Lines itemizable.Lines `gorm:"-"`
}

// TableName returns the table name for GORM
func (Donation) TableName() string {
	return "donations"
}

// NewDonation creates a donation bound for a storage location
func NewDonation(organizationID, storageLocationID uuid.UUID, source Source) (*Donation, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if storageLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Storage location ID cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown donation source")
	}

	return &Donation{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(organizationID),
		StorageLocationID: storageLocationID,
		Source:            source,
		Lines:             make(itemizable.Lines, 0),
	}, nil
}

// ItemizableType identifies donations on shared line-item rows
func (d *Donation) ItemizableType() string {
	return "Donation"
}

// LineItems returns the line-item collection
func (d *Donation) LineItems() itemizable.Lines {
	return d.Lines
}

// SetLineItems replaces the line-item collection
func (d *Donation) SetLineItems(lines itemizable.Lines) {
	d.Lines = lines
	d.UpdatedAt = time.Now()
}

// InventoryDirection returns the sign applied to inventory on commit
func (d *Donation) InventoryDirection() itemizable.Direction {
	return itemizable.DirectionIn
}

// AddLine appends a line item; quantity must be a positive integer
func (d *Donation) AddLine(itemID uuid.UUID, quantity int, unitName string) (*itemizable.LineItem, error) {
	return itemizable.AddLine(d, itemID, quantity, unitName)
}

// CombineDuplicates merges lines sharing an item ID. Idempotent.
func (d *Donation) CombineDuplicates() {
	itemizable.CombineDuplicates(d)
}

// Validate enforces the donation invariants
func (d *Donation) Validate() error {
	if !d.Source.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unknown donation source")
	}
	return d.Lines.Validate()
}
