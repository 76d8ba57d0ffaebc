package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/lastloc"
	"github.com/skycast-app/skycast/internal/server/utils"
	"github.com/skycast-app/skycast/internal/tiles"
)

type MapsHandler struct {
	lastLoc *lastloc.Cache
	proxy   *tiles.Proxy
	logger  *zap.Logger
}

func NewMapsHandler(lastLoc *lastloc.Cache, proxy *tiles.Proxy, logger *zap.Logger) *MapsHandler {
	return &MapsHandler{
		lastLoc: lastLoc,
		proxy:   proxy,
		logger:  logger,
	}
}

// LastLocation returns the most recently fetched coordinate. 404 means
// no weather has been fetched yet; the viewer shows a prompt instead of
// a map.
func (h *MapsHandler) LastLocation(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	coord, err := h.lastLoc.Load(ctx)
	if err != nil {
		h.logger.Error("Failed to load last location", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to load last location",
			Code:  "STORE_ERROR",
		})
		return
	}

	if coord == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No location available yet",
			Code:  "NO_LOCATION",
		})
		return
	}

	c.JSON(http.StatusOK, LastLocationResponse{Location: coord})
}

// CloudTile proxies one tile of the cloud overlay layer. The response
// advertises the opacity the viewer should blend it with.
func (h *MapsHandler) CloudTile(c *gin.Context) {
	z, errZ := strconv.Atoi(c.Param("z"))
	x, errX := strconv.Atoi(c.Param("x"))
	y, errY := strconv.Atoi(strings.TrimSuffix(c.Param("y"), ".png"))
	if errZ != nil || errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Tile coordinates must be integers",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	ctx := utils.GetContextFromGinContext(c)

	tile, contentType, err := h.proxy.CloudTile(ctx, z, x, y)
	if err != nil {
		if errors.Is(err, tiles.ErrOutOfRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_PARAMS",
			})
			return
		}

		h.logger.Warn("Tile fetch failed",
			zap.Int("z", z), zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Failed to fetch tile",
			Code:  "UPSTREAM_ERROR",
		})
		return
	}

	c.Header("X-Overlay-Opacity", fmt.Sprintf("%.1f", tiles.OverlayOpacity))
	c.Data(http.StatusOK, contentType, tile)
}
