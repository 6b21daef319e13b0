package distribution

import (
	"fmt"
	"time"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestStatus is the lifecycle status of a partner request
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestStarted   RequestStatus = "started"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

// IsValid checks if the status is a known RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestStarted, RequestFulfilled, RequestCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if transition to the target status is allowed
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	transitions := map[RequestStatus][]RequestStatus{
		RequestPending:   {RequestStarted, RequestCancelled},
		RequestStarted:   {RequestFulfilled, RequestCancelled},
		RequestFulfilled: {},
		RequestCancelled: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// ItemRequest is one requested item with a quantity, as the partner
// entered it. Quantities stay positive integers end to end.
type ItemRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	UnitName  string    `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ItemRequest) TableName() string {
	return "item_requests"
}

// Request is a partner's ask for goods. Fulfilling one creates a
// distribution from its item requests; the request itself never
// touches inventory.
type Request struct {
	shared.OrgAggregateRoot
	PartnerID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	PartnerUserID  *uuid.UUID           `gorm:"type:uuid"`
	PartnerUser    *catalog.PartnerUser `gorm:"foreignKey:PartnerUserID"`
	Status         RequestStatus        `gorm:"size:20;not null;default:'pending';index"`
	Comments       string               `gorm:"type:text"`
	DistributionID *uuid.UUID           `gorm:"type:uuid;index"`
	ItemRequests   []ItemRequest        `gorm:"foreignKey:RequestID"`
}

// TableName returns the table name for GORM
func (Request) TableName() string {
	return "requests"
}

// NewRequest creates a pending request
func NewRequest(organizationID, partnerID uuid.UUID) (*Request, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Organization ID cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Partner ID cannot be empty")
	}

	r := &Request{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		PartnerID:        partnerID,
		Status:           RequestPending,
		ItemRequests:     make([]ItemRequest, 0),
	}
	r.AddDomainEvent(NewRequestCreatedEvent(r))
	return r, nil
}

// AddItemRequest appends a requested item
func (r *Request) AddItemRequest(itemID uuid.UUID, quantity int, unitName string) (*ItemRequest, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity, "Quantity must be a positive integer")
	}

	ir := ItemRequest{
		ID:        uuid.New(),
		RequestID: r.ID,
		ItemID:    itemID,
		Quantity:  quantity,
		UnitName:  unitName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.ItemRequests = append(r.ItemRequests, ir)
	r.UpdatedAt = time.Now()
	return &r.ItemRequests[len(r.ItemRequests)-1], nil
}

// RequestedLines views the item requests as line items so the shared
// line-item helpers can total and copy them.
func (r *Request) RequestedLines() itemizable.Lines {
	lines := make(itemizable.Lines, 0, len(r.ItemRequests))
	for _, ir := range r.ItemRequests {
		lines = append(lines, itemizable.LineItem{
			ID:            ir.ID,
			ItemizableID:  r.ID,
			ItemizableTyp: "Request",
			ItemID:        ir.ItemID,
			Quantity:      ir.Quantity,
			UnitName:      ir.UnitName,
			CreatedAt:     ir.CreatedAt,
			UpdatedAt:     ir.UpdatedAt,
		})
	}
	return lines
}

// TotalRequested sums the requested quantities
func (r *Request) TotalRequested() int {
	total := 0
	for _, ir := range r.ItemRequests {
		total += ir.Quantity
	}
	return total
}

func (r *Request) transition(target RequestStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot transition request from %s to %s", r.Status, target))
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}

// Start marks the request as being worked on
func (r *Request) Start() error {
	if err := r.transition(RequestStarted); err != nil {
		return err
	}
	r.AddDomainEvent(NewRequestStatusChangedEvent(r, RequestPending))
	return nil
}

// Fulfill marks the request as satisfied by the given distribution.
// Callers commit the distribution in the same transaction, so a failed
// commit leaves the request started.
func (r *Request) Fulfill(distributionID uuid.UUID) error {
	if distributionID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Distribution ID cannot be empty")
	}
	previous := r.Status
	if err := r.transition(RequestFulfilled); err != nil {
		return err
	}
	r.DistributionID = &distributionID
	r.AddDomainEvent(NewRequestStatusChangedEvent(r, previous))
	return nil
}

// Cancel discards a pending or started request
func (r *Request) Cancel() error {
	previous := r.Status
	if err := r.transition(RequestCancelled); err != nil {
		return err
	}
	r.AddDomainEvent(NewRequestStatusChangedEvent(r, previous))
	return nil
}
