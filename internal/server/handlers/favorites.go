package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/favorites"
	"github.com/skycast-app/skycast/internal/server/utils"
)

type FavoritesHandler struct {
	favs   *favorites.Adapter
	logger *zap.Logger
}

func NewFavoritesHandler(favs *favorites.Adapter, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favs:   favs,
		logger: logger,
	}
}

// List reloads the persisted favorites, mirroring the viewer re-reading
// them whenever the screen regains focus.
func (h *FavoritesHandler) List(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	c.JSON(http.StatusOK, FavoritesResponse{Cities: h.favs.Load(ctx)})
}

// Toggle flips membership for one city and answers with the optimistic
// new state; a failed store write is logged by the adapter, not
// surfaced here.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "City name is required",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	ctx := utils.GetContextFromGinContext(c)
	favorite, cities := h.favs.Toggle(ctx, city)

	h.logger.Info("Favorite toggled",
		zap.String("city", city),
		zap.Bool("favorite", favorite),
		zap.Int("count", len(cities)))

	c.JSON(http.StatusOK, ToggleResponse{
		City:     city,
		Favorite: favorite,
		Cities:   cities,
	})
}

// Remove drops one city from the favorites list.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "City name is required",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	ctx := utils.GetContextFromGinContext(c)
	cities := h.favs.Remove(ctx, city)

	h.logger.Info("Favorite removed", zap.String("city", city), zap.Int("count", len(cities)))

	c.JSON(http.StatusOK, FavoritesResponse{Cities: cities})
}
