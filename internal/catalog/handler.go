package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roomrec-backend/internal/shared/server/respond"
)

// Handler serves the read-only room and preference lookups. Lookup returns
// the current catalog or nil while the service is degraded.
type Handler struct {
	Lookup func() *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(lookup func() *Catalog) *Handler {
	return &Handler{Lookup: lookup}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.rooms)
	rg.GET("/users/:id/preferences", h.preferences)
}

func (h *Handler) rooms(c *gin.Context) {
	cat := h.Lookup()
	if cat == nil {
		respond.Error(c, http.StatusServiceUnavailable, "service_unavailable", "model artifacts are not loaded", nil)
		return
	}

	if roomID := c.Query("room_id"); roomID != "" {
		room, ok := cat.Room(roomID)
		if !ok {
			// Unknown room is an empty result, not a fault.
			respond.OK(c, gin.H{"success": true, "rooms": gin.H{}})
			return
		}
		respond.OK(c, gin.H{"success": true, "rooms": room.Attributes})
		return
	}

	respond.OK(c, gin.H{"success": true, "rooms": cat.RoomTable()})
}

func (h *Handler) preferences(c *gin.Context) {
	cat := h.Lookup()
	if cat == nil {
		respond.Error(c, http.StatusServiceUnavailable, "service_unavailable", "model artifacts are not loaded", nil)
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user id must be an integer", nil)
		return
	}

	respond.OK(c, gin.H{
		"success":         true,
		"user_id":         userID,
		"preferred_rooms": cat.PreferredRooms(userID),
	})
}
