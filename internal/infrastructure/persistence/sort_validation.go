package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"reporting_category": true,
	"active":             true,
}

// PartnerSortFields contains allowed sort fields for partners
var PartnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

// StorageLocationSortFields contains allowed sort fields for storage locations
var StorageLocationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
}

// DistributionSortFields contains allowed sort fields for distributions
var DistributionSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"issued_at":           true,
	"partner_id":          true,
	"storage_location_id": true,
	"delivery_method":     true,
	"state":               true,
}

// RequestSortFields contains allowed sort fields for partner requests
var RequestSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"partner_id": true,
	"status":     true,
}

// DonationSortFields contains allowed sort fields for donations
var DonationSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"issued_at":           true,
	"source":              true,
	"storage_location_id": true,
}

// TransferSortFields contains allowed sort fields for transfers
var TransferSortFields = map[string]bool{
	"id":                       true,
	"created_at":               true,
	"updated_at":               true,
	"from_storage_location_id": true,
	"to_storage_location_id":   true,
}
