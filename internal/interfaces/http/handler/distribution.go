package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	appdist "github.com/essentials/backend/internal/application/distribution"
	"github.com/essentials/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DistributionHandler handles distribution API endpoints
type DistributionHandler struct {
	BaseHandler
	distributionService *appdist.DistributionService
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(distributionService *appdist.DistributionService) *DistributionHandler {
	return &DistributionHandler{distributionService: distributionService}
}

// RegisterRoutes registers distribution routes on the given group
func (h *DistributionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	distributions := rg.Group("/distributions")
	{
		distributions.POST("", h.Create)
		distributions.GET("", h.List)
		distributions.GET("/export", h.ExportCSV)
		distributions.GET("/:id", h.GetByID)
		distributions.PUT("/:id", h.Update)
		distributions.DELETE("/:id", h.Delete)
		distributions.POST("/:id/complete", h.Complete)
	}
}

// Create schedules a new distribution and commits its inventory
func (h *DistributionHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appdist.CreateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dist, err := h.distributionService.Create(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dist)
}

// GetByID retrieves a distribution by ID
func (h *DistributionHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	distributionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distribution ID format")
		return
	}

	dist, err := h.distributionService.GetByID(c.Request.Context(), organizationID, distributionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dist)
}

// List retrieves distributions matching the query predicates
func (h *DistributionHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var q appdist.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	distributions, err := h.distributionService.List(c.Request.Context(), organizationID, q)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, distributions)
}

// Update edits a committed distribution, re-reconciling inventory
func (h *DistributionHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	distributionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distribution ID format")
		return
	}

	var req appdist.UpdateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dist, err := h.distributionService.Update(c.Request.Context(), organizationID, distributionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dist)
}

// Delete removes a distribution and restores its inventory
func (h *DistributionHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	distributionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distribution ID format")
		return
	}

	if err := h.distributionService.Delete(c.Request.Context(), organizationID, distributionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Complete marks a scheduled distribution as complete
func (h *DistributionHandler) Complete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	distributionID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid distribution ID format")
		return
	}

	dist, err := h.distributionService.Complete(c.Request.Context(), organizationID, distributionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dist)
}

// ExportCSV streams the matching distributions as a CSV download
func (h *DistributionHandler) ExportCSV(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var q appdist.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rows, err := h.distributionService.CSVExport(c.Request.Context(), organizationID, q)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	filename := "distributions_" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.WriteAll(rows); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}
