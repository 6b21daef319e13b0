package handler

import (
	appcat "github.com/essentials/backend/internal/application/catalog"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/interfaces/http/dto"
	"github.com/essentials/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles organization, item, storage location and partner
// reference-data endpoints.
type CatalogHandler struct {
	BaseHandler
	catalogService *appcat.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *appcat.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes on the given group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/organization", h.GetOrganization)

	items := rg.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.POST("/:id/deactivate", h.DeactivateItem)
	}

	locations := rg.Group("/storage_locations")
	{
		locations.POST("", h.CreateStorageLocation)
		locations.GET("", h.ListStorageLocations)
	}

	partners := rg.Group("/partners")
	{
		partners.GET("", h.ListPartners)
		partners.GET("/:id", h.GetPartner)
	}
}

// GetOrganization returns the organization resolved from the request header
func (h *CatalogHandler) GetOrganization(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	org, err := h.catalogService.GetOrganization(c.Request.Context(), organizationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, org)
}

// CreateItem adds a catalog item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appcat.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// GetItem retrieves an item by ID
func (h *CatalogHandler) GetItem(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), organizationID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// ListItems lists items, optionally narrowed by active flag and category
func (h *CatalogHandler) ListItems(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active == "true"
	}
	if category := c.Query("reporting_category"); category != "" {
		filter.Filters["reporting_category"] = category
	}

	items, err := h.catalogService.ListItems(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// DeactivateItem hides an item from new intake
func (h *CatalogHandler) DeactivateItem(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.catalogService.DeactivateItem(c.Request.Context(), organizationID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// CreateStorageLocation adds a storage location
func (h *CatalogHandler) CreateStorageLocation(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appcat.CreateStorageLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	location, err := h.catalogService.CreateStorageLocation(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, location)
}

// ListStorageLocations lists the organization's storage locations
func (h *CatalogHandler) ListStorageLocations(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	locations, err := h.catalogService.ListStorageLocations(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, locations)
}

// GetPartner retrieves a partner with its users
func (h *CatalogHandler) GetPartner(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	partnerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	partner, err := h.catalogService.GetPartner(c.Request.Context(), organizationID, partnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, partner)
}

// ListPartners lists the organization's partner agencies
func (h *CatalogHandler) ListPartners(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	partners, err := h.catalogService.ListPartners(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, partners)
}

// listFilter binds common pagination parameters into a repository filter.
// A false return means the response has already been written.
func (h *CatalogHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return shared.Filter{}, false
	}
	defaults := dto.DefaultListRequest()
	if listReq.Page <= 0 {
		listReq.Page = defaults.Page
	}
	if listReq.PageSize <= 0 {
		listReq.PageSize = defaults.PageSize
	}

	return shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Filters:  map[string]interface{}{},
	}, true
}
