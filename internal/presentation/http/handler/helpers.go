package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/internal/domain/enum"
	"github.com/kmaina/stockroom-api/internal/domain/lifecycle"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// GetActor builds the lifecycle actor for the authenticated user. Unknown
// role codes in the token are ignored.
func GetActor(c *gin.Context) *lifecycle.Actor {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}

	var roles []enum.Role
	for _, code := range GetUserRoles(c) {
		if role, ok := enum.ParseRole(code); ok {
			roles = append(roles, role)
		}
	}

	return &lifecycle.Actor{ID: *userID, Roles: roles}
}
