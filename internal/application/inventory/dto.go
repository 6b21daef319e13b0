package inventory

import (
	"time"

	"github.com/essentials/backend/internal/domain/donation"
	"github.com/essentials/backend/internal/domain/inventory"
	"github.com/essentials/backend/internal/domain/itemizable"
	"github.com/essentials/backend/internal/domain/shared/valueobject"
	"github.com/essentials/backend/internal/domain/transfer"
	"github.com/google/uuid"
)

// LineInput is one (item, quantity) entry on an intake request
type LineInput struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
	UnitName string    `json:"unit_name"`
}

// CreateDonationRequest is the payload for recording a donation
type CreateDonationRequest struct {
	StorageLocationID uuid.UUID   `json:"storage_location_id" binding:"required"`
	Source            string      `json:"source" binding:"required"`
	Comment           string      `json:"comment"`
	IssuedAt          *time.Time  `json:"issued_at"`
	Lines             []LineInput `json:"line_items" binding:"required,min=1,dive"`
}

// CreateTransferRequest is the payload for moving goods between locations
type CreateTransferRequest struct {
	FromStorageLocationID uuid.UUID   `json:"from_storage_location_id" binding:"required"`
	ToStorageLocationID   uuid.UUID   `json:"to_storage_location_id" binding:"required"`
	Comment               string      `json:"comment"`
	Lines                 []LineInput `json:"line_items" binding:"required,min=1,dive"`
}

// LineResponse is one line item in a response payload. Display carries
// the unit-aware quantity string ("12 Packs", or the bare number when no
// unit was recorded).
type LineResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
	UnitName string    `json:"unit_name,omitempty"`
	Display  string    `json:"display"`
}

// LevelResponse is the on-hand quantity for one location-item tuple
type LevelResponse struct {
	StorageLocationID uuid.UUID `json:"storage_location_id"`
	ItemID            uuid.UUID `json:"item_id"`
	Quantity          int       `json:"quantity"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DonationResponse is the API representation of a donation
type DonationResponse struct {
	ID                uuid.UUID      `json:"id"`
	OrganizationID    uuid.UUID      `json:"organization_id"`
	StorageLocationID uuid.UUID      `json:"storage_location_id"`
	Source            string         `json:"source"`
	Comment           string         `json:"comment,omitempty"`
	IssuedAt          *time.Time     `json:"issued_at,omitempty"`
	Total             int            `json:"total"`
	Lines             []LineResponse `json:"line_items"`
	CreatedAt         time.Time      `json:"created_at"`
}

// TransferResponse is the API representation of a transfer
type TransferResponse struct {
	ID                    uuid.UUID      `json:"id"`
	OrganizationID        uuid.UUID      `json:"organization_id"`
	FromStorageLocationID uuid.UUID      `json:"from_storage_location_id"`
	ToStorageLocationID   uuid.UUID      `json:"to_storage_location_id"`
	Comment               string         `json:"comment,omitempty"`
	Total                 int            `json:"total"`
	Lines                 []LineResponse `json:"line_items"`
	CreatedAt             time.Time      `json:"created_at"`
}

// ToLevelResponse converts an InventoryLevel to its API representation
func ToLevelResponse(level *inventory.InventoryLevel) LevelResponse {
	return LevelResponse{
		StorageLocationID: level.StorageLocationID,
		ItemID:            level.ItemID,
		Quantity:          level.Quantity,
		UpdatedAt:         level.UpdatedAt,
	}
}

// ToLevelResponses converts a slice of levels
func ToLevelResponses(levels []inventory.InventoryLevel) []LevelResponse {
	responses := make([]LevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToLevelResponse(&levels[i]))
	}
	return responses
}

// ToDonationResponse converts a Donation to its API representation
func ToDonationResponse(d *donation.Donation) DonationResponse {
	resp := DonationResponse{
		ID:                d.ID,
		OrganizationID:    d.OrganizationID,
		StorageLocationID: d.StorageLocationID,
		Source:            d.Source.String(),
		Comment:           d.Comment,
		Total:             d.Lines.Total(),
		Lines:             ToLineResponses(d.Lines),
		CreatedAt:         d.CreatedAt,
	}
	if !d.IssuedAt.IsZero() {
		issuedAt := d.IssuedAt
		resp.IssuedAt = &issuedAt
	}
	return resp
}

// ToTransferResponse converts a Transfer to its API representation
func ToTransferResponse(t *transfer.Transfer) TransferResponse {
	return TransferResponse{
		ID:                    t.ID,
		OrganizationID:        t.OrganizationID,
		FromStorageLocationID: t.FromStorageLocationID,
		ToStorageLocationID:   t.ToStorageLocationID,
		Comment:               t.Comment,
		Total:                 t.Lines.Total(),
		Lines:                 ToLineResponses(t.Lines),
		CreatedAt:             t.CreatedAt,
	}
}

// ToLineResponses converts line items, rendering each display string.
func ToLineResponses(lines itemizable.Lines) []LineResponse {
	responses := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		responses = append(responses, LineResponse{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			UnitName: l.UnitName,
			Display:  displayQuantity(l.Quantity, l.UnitName),
		})
	}
	return responses
}

func displayQuantity(quantity int, unitName string) string {
	unit, err := valueobject.NewItemUnit(unitName, 1)
	if err != nil {
		return valueobject.FormatQuantity(quantity, valueobject.ItemUnit{})
	}
	return valueobject.FormatQuantity(quantity, unit)
}
