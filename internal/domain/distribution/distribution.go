package distribution

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryMethod is how a distribution reaches the partner
type DeliveryMethod string

const (
	DeliveryPickUp   DeliveryMethod = "pick_up"
	DeliveryDelivery DeliveryMethod = "delivery"
	DeliveryShipped  DeliveryMethod = "shipped"
)

// IsValid checks if the method is a known DeliveryMethod
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryPickUp, DeliveryDelivery, DeliveryShipped:
		return true
	}
	return false
}

// String returns the string representation of the delivery method
func (m DeliveryMethod) String() string {
	return string(m)
}

// State is the lifecycle state of a distribution
type State string

const (
	StateScheduled State = "scheduled"
	StateComplete  State = "complete"
)

// IsValid checks if the state is a known State
func (s State) IsValid() bool {
	return s == StateScheduled || s == StateComplete
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// Earliest date a distribution may be issued at
var issuedAtFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Distribution is a committed or scheduled delivery of goods to a partner.
// Committing one deducts the source storage location's inventory; deleting
// one restores it.
type Distribution struct {
	shared.OrgAggregateRoot
	PartnerID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	StorageLocationID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	DeliveryMethod       DeliveryMethod   `gorm:"size:20;not null;default:'pick_up'"`
	ShippingCost         *decimal.Decimal `gorm:"type:decimal(8,2)"`
	IssuedAt             time.Time        `gorm:"index"`
	State                State            `gorm:"size:20;not null;default:'scheduled'"`
	AgencyRep            string           `gorm:"size:255"`
	Comment              string           `gorm:"type:text"`
	ReminderEmailEnabled bool             `gorm:"not null;default:false"`
	SourceRequestID      *uuid.UUID       `gorm:"type:uuid;index"`

	Lines itemizable.Lines `gorm:"-"`
}

// TableName returns the table name for GORM
func (Distribution) TableName() string {
	return "distributions"
}

// NewDistribution creates a scheduled distribution
func NewDistribution(organizationID, partnerID, storageLocationID uuid.UUID, deliveryMethod DeliveryMethod) (*Distribution, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner ID cannot be empty")
	}
	if storageLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Storage location ID cannot be empty")
	}
	if !deliveryMethod.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown delivery method")
	}

	d := &Distribution{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(organizationID),
		PartnerID:         partnerID,
		StorageLocationID: storageLocationID,
		DeliveryMethod:    deliveryMethod,
		State:             StateScheduled,
		Lines:             make(itemizable.Lines, 0),
	}
	d.AddDomainEvent(NewDistributionCreatedEvent(d))
	return d, nil
}

// ItemizableType identifies distributions on shared line-item rows
func (d *Distribution) ItemizableType() string {
	return "Distribution"
}

// LineItems returns the line-item collection
func (d *Distribution) LineItems() itemizable.Lines {
	return d.Lines
}

// SetLineItems replaces the line-item collection
func (d *Distribution) SetLineItems(lines itemizable.Lines) {
	d.Lines = lines
	d.UpdatedAt = time.Now()
}

// InventoryDirection returns the sign applied to inventory on commit
func (d *Distribution) InventoryDirection() itemizable.Direction {
	return itemizable.DirectionOut
}

// AddLine appends a line item; quantity must be a positive integer
func (d *Distribution) AddLine(itemID uuid.UUID, quantity int, unitName string) (*itemizable.LineItem, error) {
	return itemizable.AddLine(d, itemID, quantity, unitName)
}

// CombineDuplicates merges lines sharing an item ID. Idempotent.
func (d *Distribution) CombineDuplicates() {
	itemizable.CombineDuplicates(d)
}

// CopyLineItems duplicates the source lines onto this distribution and
// returns the copied count. The source is left untouched.
func (d *Distribution) CopyLineItems(src itemizable.Lines) int {
	return itemizable.CopyLineItems(src, d)
}

// Normalize applies the pre-commit defaulting the write path performs on
// every save. This silently alters input rather than rejecting it, which
// is why it is a distinct step from Validate:
//   - a missing issued-at defaults to creation time
//   - the shipping cost is cleared whenever the delivery method is not shipped
func (d *Distribution) Normalize(clk clock.Clock) {
	if d.IssuedAt.IsZero() {
		d.IssuedAt = clk.Now()
	}
	if d.DeliveryMethod != DeliveryShipped {
		d.ShippingCost = nil
	}
}

// Validate enforces the distribution invariants against "now".
// Callers normalize first; a zero issued-at here is a defect upstream.
func (d *Distribution) Validate(now time.Time) error {
	if !d.DeliveryMethod.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unknown delivery method")
	}
	if !d.State.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidState, "Unknown distribution state")
	}

	if !d.IssuedAt.IsZero() {
		if d.IssuedAt.Before(issuedAtFloor) {
			return shared.NewDomainError(shared.CodeInvalidDate, "Issued at cannot be earlier than the year 2000")
		}
		if d.IssuedAt.After(now.AddDate(1, 0, 0)) {
			return shared.NewDomainError(shared.CodeInvalidDate, "Issued at cannot be more than one year in the future")
		}
	}

	if d.DeliveryMethod == DeliveryShipped && d.ShippingCost != nil && d.ShippingCost.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidShippingCost, "Shipping cost cannot be negative")
	}

	return d.Lines.Validate()
}

// Complete marks the distribution as handed over
func (d *Distribution) Complete() error {
	if d.State != StateScheduled {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot complete distribution in %s state", d.State))
	}

	d.State = StateComplete
	d.UpdatedAt = time.Now()
	d.AddDomainEvent(NewDistributionCompletedEvent(d))
	return nil
}

// CopyFromRequest populates a new, unsaved distribution from a partner
// request: line items in request order, organization and partner carried
// over, the representative string synthesized from the partner user, the
// request comments, and an issued-at of tomorrow. Inventory is untouched
// until the distribution commits.
func (d *Distribution) CopyFromRequest(req *Request, clk clock.Clock) {
	for _, ir := range req.ItemRequests {
		d.Lines = append(d.Lines, itemizable.LineItem{
			ID:            uuid.New(),
			ItemizableID:  d.ID,
			ItemizableTyp: d.ItemizableType(),
			ItemID:        ir.ItemID,
			Quantity:      ir.Quantity,
			UnitName:      ir.UnitName,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		})
	}

	d.OrganizationID = req.OrganizationID
	d.PartnerID = req.PartnerID
	if req.PartnerUser != nil {
		d.AgencyRep = req.PartnerUser.AgencyRep()
	}
	d.Comment = req.Comments
	d.IssuedAt = clk.Now().AddDate(0, 0, 1)
	d.SourceRequestID = &req.ID
	d.UpdatedAt = time.Now()
}

// Future returns true iff the distribution is issued strictly after now
func (d *Distribution) Future(clk clock.Clock) bool {
	return d.IssuedAt.After(clk.Now())
}

// effectiveIssuedAt falls back to the creation time when issued-at was
// never set, matching the reporting scopes.
func (d *Distribution) effectiveIssuedAt() time.Time {
	if d.IssuedAt.IsZero() {
		return d.CreatedAt
	}
	return d.IssuedAt
}

// DistributedAt renders the issue date for display, appending the
// time of day only when a non-midnight time was explicitly provided.
func (d *Distribution) DistributedAt() string {
	at := d.effectiveIssuedAt()
	date := at.Format("January 2 2006")
	if at.Hour() == 0 && at.Minute() == 0 {
		return date
	}
	return date + " " + strings.ToLower(at.Format("3:04PM"))
}

// CSVExportAttributes produces the ordered export row for this
// distribution. The fifth column is reserved and left blank.
func (d *Distribution) CSVExportAttributes(partnerName, storageLocationName string) []string {
	return []string{
		partnerName,
		d.effectiveIssuedAt().Format("2006-01-02"),
		storageLocationName,
		strconv.Itoa(d.Lines.Total()),
		"",
		d.DeliveryMethod.String(),
		d.State.String(),
		d.AgencyRep,
	}
}
