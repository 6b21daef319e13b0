package handler

import (
	"context"

	appdist "github.com/essentials/backend/internal/application/distribution"
	"github.com/essentials/backend/internal/domain/distribution"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/interfaces/http/dto"
	"github.com/essentials/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler handles partner request API endpoints
type RequestHandler struct {
	BaseHandler
	requestService *appdist.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *appdist.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RegisterRoutes registers request routes on the given group
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/cancel", h.Cancel)
		requests.POST("/:id/fulfill", h.Fulfill)
	}
}

// Create files a new pending request for a partner
func (h *RequestHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	var req appdist.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID retrieves a request by ID
func (h *RequestHandler) GetByID(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), organizationID, requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

// List retrieves requests filtered by lifecycle status
func (h *RequestHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	status := distribution.RequestStatus(c.DefaultQuery("status", "pending"))
	if !status.IsValid() {
		h.BadRequest(c, "Invalid request status")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	defaults := dto.DefaultListRequest()
	if listReq.Page <= 0 {
		listReq.Page = defaults.Page
	}
	if listReq.PageSize <= 0 {
		listReq.PageSize = defaults.PageSize
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}

	requests, err := h.requestService.ListByStatus(c.Request.Context(), organizationID, status, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requests)
}

// Start marks a pending request as being worked on
func (h *RequestHandler) Start(c *gin.Context) {
	h.transition(c, h.requestService.Start)
}

// Cancel discards a pending or started request
func (h *RequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.requestService.Cancel)
}

// Fulfill turns a started request into a committed distribution
func (h *RequestHandler) Fulfill(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	var input appdist.FulfillRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dist, err := h.requestService.Fulfill(c.Request.Context(), organizationID, requestID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dist)
}

func (h *RequestHandler) transition(c *gin.Context, apply func(ctx context.Context, organizationID, requestID uuid.UUID) (*appdist.RequestResponse, error)) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Organization not resolved")
		return
	}

	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID format")
		return
	}

	request, err := apply(c.Request.Context(), organizationID, requestID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}
