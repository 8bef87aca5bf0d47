package controllers

import (
	"github.com/gin-gonic/gin"
)

// currentUserID reads the user ID placed in the context by AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentRole(c *gin.Context) string {
	if v, exists := c.Get("role"); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func isStaff(c *gin.Context) bool {
	role := currentRole(c)
	return role == "staff" || role == "admin"
}
