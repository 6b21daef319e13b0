package distribution

import (
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types emitted by the distribution context
const (
	EventDistributionCreated   = "distribution.created"
	EventDistributionCompleted = "distribution.completed"
	EventRequestCreated        = "distribution.request_created"
	EventRequestStatusChanged  = "distribution.request_status_changed"
)

// DistributionCreatedEvent is emitted when a distribution is created
type DistributionCreatedEvent struct {
	shared.BaseDomainEvent
	PartnerID         uuid.UUID `json:"partner_id"`
	StorageLocationID uuid.UUID `json:"storage_location_id"`
}

// NewDistributionCreatedEvent creates a DistributionCreatedEvent
func NewDistributionCreatedEvent(d *Distribution) *DistributionCreatedEvent {
	return &DistributionCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventDistributionCreated, "Distribution", d.ID, d.OrganizationID),
		PartnerID:         d.PartnerID,
		StorageLocationID: d.StorageLocationID,
	}
}

// DistributionCompletedEvent is emitted when a distribution is handed over
type DistributionCompletedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
}

// NewDistributionCompletedEvent creates a DistributionCompletedEvent
func NewDistributionCompletedEvent(d *Distribution) *DistributionCompletedEvent {
	return &DistributionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDistributionCompleted, "Distribution", d.ID, d.OrganizationID),
		PartnerID:       d.PartnerID,
	}
}

// RequestCreatedEvent is emitted when a partner files a request
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
}

// NewRequestCreatedEvent creates a RequestCreatedEvent
func NewRequestCreatedEvent(r *Request) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestCreated, "Request", r.ID, r.OrganizationID),
		PartnerID:       r.PartnerID,
	}
}

// RequestStatusChangedEvent is emitted on every request transition
type RequestStatusChangedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID     `json:"partner_id"`
	OldStatus RequestStatus `json:"old_status"`
	NewStatus RequestStatus `json:"new_status"`
}

// NewRequestStatusChangedEvent creates a RequestStatusChangedEvent
func NewRequestStatusChangedEvent(r *Request, old RequestStatus) *RequestStatusChangedEvent {
	return &RequestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestStatusChanged, "Request", r.ID, r.OrganizationID),
		PartnerID:       r.PartnerID,
		OldStatus:       old,
		NewStatus:       r.Status,
	}
}
