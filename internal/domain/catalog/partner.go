package catalog

import (
	"fmt"
	"time"

	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Organization is a member organization running a distribution program.
// ReceiveEmailOnRequests is consumed by the mailer when partner requests
// arrive; the core only carries the flag.
type Organization struct {
	shared.BaseAggregateRoot
	Name                   string `gorm:"size:255;not null"`
	Email                  string `gorm:"size:255"`
	ReceiveEmailOnRequests bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization
func NewOrganization(name, email string) (*Organization, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization name cannot be empty")
	}
	return &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
	}, nil
}

// Partner is an agency that receives distributions from an organization
type Partner struct {
	shared.OrgAggregateRoot
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255"`

	Users []PartnerUser `gorm:"foreignKey:PartnerID;references:ID"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner agency
func NewPartner(organizationID uuid.UUID, name, email string) (*Partner, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner name cannot be empty")
	}
	return &Partner{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             name,
		Email:            email,
		Users:            make([]PartnerUser, 0),
	}, nil
}

// PartnerUser is a person acting on behalf of a partner agency
type PartnerUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (PartnerUser) TableName() string {
	return "partner_users"
}

// NewPartnerUser creates a new partner user
func NewPartnerUser(partnerID uuid.UUID, name, email string) (*PartnerUser, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner ID cannot be empty")
	}
	if name == "" || email == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner user name and email are required")
	}
	now := time.Now()
	return &PartnerUser{
		ID:        uuid.New(),
		PartnerID: partnerID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AgencyRep renders the "Name <email>" representative string recorded on
// distributions derived from this user's requests.
func (u PartnerUser) AgencyRep() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}
