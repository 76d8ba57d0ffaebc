package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skycast-app/skycast/internal/theme"
)

type ThemeHandler struct{}

func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// Resolve computes the effective appearance from the reported system
// scheme and the user's preference. Both inputs are explicit so a
// system or preference change just means asking again.
func (h *ThemeHandler) Resolve(c *gin.Context) {
	system, ok := theme.Parse(c.DefaultQuery("system", string(theme.Light)))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "system must be one of: light, dark, system",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	preference, ok := theme.Parse(c.DefaultQuery("preference", string(theme.System)))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "preference must be one of: light, dark, system",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	c.JSON(http.StatusOK, ThemeResponse{
		Resolved: string(theme.Resolve(system, preference)),
	})
}
