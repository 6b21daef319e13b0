package handler

import (
	appinv "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles donation, transfer and inventory level endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *appinv.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *appinv.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donations := rg.Group("/donations")
	{
		donations.POST("", h.CreateDonation)
		donations.GET("/:id", h.GetDonation)
		donations.DELETE("/:id", h.DeleteDonation)
	}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.CreateTransfer)
		transfers.GET("/:id", h.GetTransfer)
		transfers.DELETE("/:id", h.DeleteTransfer)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.GET("/locations/:id/levels", h.LocationLevels)
		inventory.GET("/locations/:id/items/:item_id", h.QuantityOnHand)
	}
}

// CreateDonation records a donation and adds its goods to inventory
func (h *InventoryHandler) CreateDonation(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appinv.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	d, err := h.inventoryService.RecordDonation(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, d)
}

// GetDonation retrieves a donation by ID
func (h *InventoryHandler) GetDonation(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	donationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid donation ID format")
		return
	}

	d, err := h.inventoryService.GetDonation(c.Request.Context(), organizationID, donationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// DeleteDonation removes a donation and backs its goods out of inventory
func (h *InventoryHandler) DeleteDonation(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	donationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid donation ID format")
		return
	}

	if err := h.inventoryService.DeleteDonation(c.Request.Context(), organizationID, donationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateTransfer moves goods between two storage locations
func (h *InventoryHandler) CreateTransfer(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appinv.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	t, err := h.inventoryService.RecordTransfer(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, t)
}

// GetTransfer retrieves a transfer by ID
func (h *InventoryHandler) GetTransfer(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	t, err := h.inventoryService.GetTransfer(c.Request.Context(), organizationID, transferID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// DeleteTransfer reverses a transfer, moving its goods back
func (h *InventoryHandler) DeleteTransfer(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	transferID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID format")
		return
	}

	if err := h.inventoryService.DeleteTransfer(c.Request.Context(), organizationID, transferID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// LocationLevels lists the on-hand quantities at one storage location
func (h *InventoryHandler) LocationLevels(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	locationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid storage location ID format")
		return
	}

	levels, err := h.inventoryService.LocationLevels(c.Request.Context(), organizationID, locationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, levels)
}

// QuantityOnHand returns the on-hand quantity for one location-item tuple
func (h *InventoryHandler) QuantityOnHand(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	locationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid storage location ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	quantity, err := h.inventoryService.QuantityOnHand(c.Request.Context(), organizationID, locationID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"storage_location_id": locationID,
		"item_id":             itemID,
		"quantity":            quantity,
	})
}
