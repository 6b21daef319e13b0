package middleware

import (
	"net/http"

	"github.com/essentials/backend/internal/infrastructure/logger"
	"github.com/essentials/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrganizationIDKey is the gin context key holding the resolved organization ID
const OrganizationIDKey = "organization_id"

// OrganizationHeader is the header carrying the caller's organization
const OrganizationHeader = "X-Organization-ID"

// OrganizationRequired resolves the organization from the request header
// and aborts with 400 when it is missing or malformed. Every bank-scoped
// route runs behind this middleware.
func OrganizationRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OrganizationHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Missing "+OrganizationHeader+" header",
				GetRequestID(c),
			))
			return
		}

		organizationID, err := uuid.Parse(raw)
		if err != nil || organizationID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Invalid "+OrganizationHeader+" header",
				GetRequestID(c),
			))
			return
		}

		c.Set(OrganizationIDKey, organizationID)

		// Enrich the request context so downstream logs carry the org
		ctx, _ := logger.WithOrganizationID(c.Request.Context(), logger.FromContext(c.Request.Context()), organizationID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetOrganizationID returns the organization resolved by OrganizationRequired.
// The second return is false when the middleware did not run.
func GetOrganizationID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(OrganizationIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
