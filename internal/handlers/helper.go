package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// ParseEmailParam extracts an email path parameter. Writes a 400 response
// and returns "" when the segment is blank.
func ParseEmailParam(c *gin.Context) string {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid email",
			Details: "email cannot be empty",
		})
		return ""
	}
	return email
}
