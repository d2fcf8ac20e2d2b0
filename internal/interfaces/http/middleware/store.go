package middleware

import (
	"net/http"

	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// StoreIDContextKey is the gin context key for the authenticated store
	StoreIDContextKey = "store_id"
	// StaffIDContextKey is the gin context key for the acting staff member
	StaffIDContextKey = "staff_id"
)

// StoreContext resolves the store scope of a request from the X-Store-ID
// header. Every data-bearing route runs behind it; a request without a valid
// store never reaches a handler.
func StoreContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Store-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "X-Store-ID header is required"))
			return
		}
		storeID, err := uuid.Parse(raw)
		if err != nil || storeID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "X-Store-ID header is not a valid UUID"))
			return
		}
		c.Set(StoreIDContextKey, storeID)

		// Staff identity is optional at this layer; operations that need an
		// actor enforce it themselves.
		if rawStaff := c.GetHeader("X-Staff-ID"); rawStaff != "" {
			if staffID, err := uuid.Parse(rawStaff); err == nil && staffID != uuid.Nil {
				c.Set(StaffIDContextKey, staffID)
			}
		}

		c.Next()
	}
}

// GetStoreID returns the store scope set by StoreContext
func GetStoreID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(StoreIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetStaffID returns the acting staff member, if the request carried one
func GetStaffID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(StaffIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
