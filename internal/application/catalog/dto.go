package catalog

import (
	"time"

	"github.com/essentials/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// UnitInput defines one packaging unit on an item payload
type UnitInput struct {
	Name     string `json:"name" binding:"required"`
	PackSize int    `json:"pack_size" binding:"required,gt=0"`
}

// CreateItemRequest is the payload for adding a catalog item
type CreateItemRequest struct {
	Name              string      `json:"name" binding:"required"`
	ReportingCategory string      `json:"reporting_category"`
	Units             []UnitInput `json:"units" binding:"omitempty,dive"`
}

// CreateStorageLocationRequest is the payload for adding a storage location
type CreateStorageLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UnitResponse is a packaging unit in a response payload
type UnitResponse struct {
	Name     string `json:"name"`
	PackSize int    `json:"pack_size"`
}

// ItemResponse is the API representation of a catalog item
type ItemResponse struct {
	ID                uuid.UUID      `json:"id"`
	OrganizationID    uuid.UUID      `json:"organization_id"`
	Name              string         `json:"name"`
	ReportingCategory string         `json:"reporting_category"`
	Active            bool           `json:"active"`
	Units             []UnitResponse `json:"units,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// StorageLocationResponse is the API representation of a storage location
type StorageLocationResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PartnerUserResponse is a partner user in a response payload
type PartnerUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PartnerResponse is the API representation of a partner agency
type PartnerResponse struct {
	ID             uuid.UUID             `json:"id"`
	OrganizationID uuid.UUID             `json:"organization_id"`
	Name           string                `json:"name"`
	Email          string                `json:"email,omitempty"`
	Users          []PartnerUserResponse `json:"users,omitempty"`
}

// OrganizationResponse is the API representation of an organization
type OrganizationResponse struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email,omitempty"`
	ReceiveEmailOnRequests bool      `json:"receive_email_on_requests"`
}

// ToItemResponse converts an item to its API representation
func ToItemResponse(item *catalog.Item) ItemResponse {
	units := make([]UnitResponse, 0, len(item.Units))
	for _, u := range item.Units {
		units = append(units, UnitResponse{Name: u.Name, PackSize: u.PackSize})
	}
	return ItemResponse{
		ID:                item.ID,
		OrganizationID:    item.OrganizationID,
		Name:              item.Name,
		ReportingCategory: item.ReportingCategory.String(),
		Active:            item.Active,
		Units:             units,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses
}

// ToStorageLocationResponse converts a storage location
func ToStorageLocationResponse(location *catalog.StorageLocation) StorageLocationResponse {
	return StorageLocationResponse{
		ID:             location.ID,
		OrganizationID: location.OrganizationID,
		Name:           location.Name,
		Address:        location.Address,
		CreatedAt:      location.CreatedAt,
	}
}

// ToStorageLocationResponses converts a slice of storage locations
func ToStorageLocationResponses(locations []catalog.StorageLocation) []StorageLocationResponse {
	responses := make([]StorageLocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToStorageLocationResponse(&locations[i]))
	}
	return responses
}

// ToPartnerResponse converts a partner with its users
func ToPartnerResponse(partner *catalog.Partner) PartnerResponse {
	users := make([]PartnerUserResponse, 0, len(partner.Users))
	for _, u := range partner.Users {
		users = append(users, PartnerUserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return PartnerResponse{
		ID:             partner.ID,
		OrganizationID: partner.OrganizationID,
		Name:           partner.Name,
		Email:          partner.Email,
		Users:          users,
	}
}

// ToPartnerResponses converts a slice of partners
func ToPartnerResponses(partners []catalog.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, 0, len(partners))
	for i := range partners {
		responses = append(responses, ToPartnerResponse(&partners[i]))
	}
	return responses
}

// ToOrganizationResponse converts an organization
func ToOrganizationResponse(org *catalog.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:                     org.ID,
		Name:                   org.Name,
		Email:                  org.Email,
		ReceiveEmailOnRequests: org.ReceiveEmailOnRequests,
	}
}
