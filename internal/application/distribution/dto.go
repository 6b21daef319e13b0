package distribution

import (
	"time"

	appinv "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDistributionRequest is the payload for scheduling a distribution
type CreateDistributionRequest struct {
	PartnerID            uuid.UUID          `json:"partner_id" binding:"required"`
	StorageLocationID    uuid.UUID          `json:"storage_location_id" binding:"required"`
	DeliveryMethod       string             `json:"delivery_method" binding:"required,oneof=pick_up delivery shipped"`
	ShippingCost         *decimal.Decimal   `json:"shipping_cost"`
	IssuedAt             *time.Time         `json:"issued_at"`
	AgencyRep            string             `json:"agency_rep"`
	Comment              string             `json:"comment"`
	ReminderEmailEnabled bool               `json:"reminder_email_enabled"`
	Lines                []appinv.LineInput `json:"line_items" binding:"required,min=1,dive"`
}

// UpdateDistributionRequest is the payload for editing a committed
// distribution. Nil fields are left unchanged; non-nil Lines replace the
// full line set.
type UpdateDistributionRequest struct {
	StorageLocationID    *uuid.UUID         `json:"storage_location_id"`
	DeliveryMethod       *string            `json:"delivery_method" binding:"omitempty,oneof=pick_up delivery shipped"`
	ShippingCost         *decimal.Decimal   `json:"shipping_cost"`
	IssuedAt             *time.Time         `json:"issued_at"`
	AgencyRep            *string            `json:"agency_rep"`
	Comment              *string            `json:"comment"`
	ReminderEmailEnabled *bool              `json:"reminder_email_enabled"`
	Lines                []appinv.LineInput `json:"line_items" binding:"omitempty,min=1,dive"`
}

// ListQuery carries the reporting predicates for listing distributions
type ListQuery struct {
	StartDate         *time.Time `form:"start_date"`
	EndDate           *time.Time `form:"end_date"`
	ThisWeek          bool       `form:"this_week"`
	Last12Months      bool       `form:"last_12_months"`
	ItemID            *uuid.UUID `form:"item_id"`
	PartnerID         *uuid.UUID `form:"partner_id"`
	StorageLocationID *uuid.UUID `form:"storage_location_id"`
	State             *string    `form:"state" binding:"omitempty,oneof=scheduled complete"`
	Diapers           bool       `form:"diapers"`
	PeriodSupplies    bool       `form:"period_supplies"`
}

// DistributionResponse is the API representation of a distribution
type DistributionResponse struct {
	ID                   uuid.UUID             `json:"id"`
	OrganizationID       uuid.UUID             `json:"organization_id"`
	PartnerID            uuid.UUID             `json:"partner_id"`
	StorageLocationID    uuid.UUID             `json:"storage_location_id"`
	DeliveryMethod       string                `json:"delivery_method"`
	ShippingCost         *decimal.Decimal      `json:"shipping_cost,omitempty"`
	IssuedAt             time.Time             `json:"issued_at"`
	DistributedAt        string                `json:"distributed_at"`
	State                string                `json:"state"`
	AgencyRep            string                `json:"agency_rep,omitempty"`
	Comment              string                `json:"comment,omitempty"`
	ReminderEmailEnabled bool                  `json:"reminder_email_enabled"`
	SourceRequestID      *uuid.UUID            `json:"source_request_id,omitempty"`
	Total                int                   `json:"total"`
	Lines                []appinv.LineResponse `json:"line_items"`
	CreatedAt            time.Time             `json:"created_at"`
}

// CreateRequestRequest is the payload for a partner filing a request
type CreateRequestRequest struct {
	PartnerID     uuid.UUID          `json:"partner_id" binding:"required"`
	PartnerUserID *uuid.UUID         `json:"partner_user_id"`
	Comments      string             `json:"comments"`
	Items         []appinv.LineInput `json:"item_requests" binding:"required,min=1,dive"`
}

// FulfillRequestInput is the payload for fulfilling a started request
type FulfillRequestInput struct {
	StorageLocationID uuid.UUID `json:"storage_location_id" binding:"required"`
	DeliveryMethod    string    `json:"delivery_method" binding:"omitempty,oneof=pick_up delivery shipped"`
}

// ItemRequestResponse is one requested item in a response payload
type ItemRequestResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
	UnitName string    `json:"unit_name,omitempty"`
}

// RequestResponse is the API representation of a partner request
type RequestResponse struct {
	ID             uuid.UUID             `json:"id"`
	OrganizationID uuid.UUID             `json:"organization_id"`
	PartnerID      uuid.UUID             `json:"partner_id"`
	Status         string                `json:"status"`
	Comments       string                `json:"comments,omitempty"`
	DistributionID *uuid.UUID            `json:"distribution_id,omitempty"`
	Items          []ItemRequestResponse `json:"item_requests"`
	TotalRequested int                   `json:"total_requested"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToDistributionResponse converts a Distribution to its API representation
func ToDistributionResponse(d *distribution.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:                   d.ID,
		OrganizationID:       d.OrganizationID,
		PartnerID:            d.PartnerID,
		StorageLocationID:    d.StorageLocationID,
		DeliveryMethod:       d.DeliveryMethod.String(),
		ShippingCost:         d.ShippingCost,
		IssuedAt:             d.IssuedAt,
		DistributedAt:        d.DistributedAt(),
		State:                d.State.String(),
		AgencyRep:            d.AgencyRep,
		Comment:              d.Comment,
		ReminderEmailEnabled: d.ReminderEmailEnabled,
		SourceRequestID:      d.SourceRequestID,
		Total:                d.Lines.Total(),
		Lines:                appinv.ToLineResponses(d.Lines),
		CreatedAt:            d.CreatedAt,
	}
}

// ToDistributionResponses converts a slice of distributions
func ToDistributionResponses(ds []distribution.Distribution) []DistributionResponse {
	responses := make([]DistributionResponse, 0, len(ds))
	for i := range ds {
		responses = append(responses, ToDistributionResponse(&ds[i]))
	}
	return responses
}

// ToRequestResponse converts a Request to its API representation
func ToRequestResponse(r *distribution.Request) RequestResponse {
	items := make([]ItemRequestResponse, 0, len(r.ItemRequests))
	for _, ir := range r.ItemRequests {
		items = append(items, ItemRequestResponse{
			ItemID:   ir.ItemID,
			Quantity: ir.Quantity,
			UnitName: ir.UnitName,
		})
	}

	return RequestResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		PartnerID:      r.PartnerID,
		Status:         r.Status.String(),
		Comments:       r.Comments,
		DistributionID: r.DistributionID,
		Items:          items,
		TotalRequested: r.TotalRequested(),
		CreatedAt:      r.CreatedAt,
	}
}

// ToRequestResponses converts a slice of requests
func ToRequestResponses(rs []distribution.Request) []RequestResponse {
	responses := make([]RequestResponse, 0, len(rs))
	for i := range rs {
		responses = append(responses, ToRequestResponse(&rs[i]))
	}
	return responses
}
