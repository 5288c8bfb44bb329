package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/application"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/response"
)

// DisplayHandler serves the per-bay message decision to display clients.
type DisplayHandler struct {
	service      *application.MessageService
	courtAliases map[string]string
}

// NewDisplayHandler creates a new DisplayHandler.
func NewDisplayHandler(service *application.MessageService, courtAliases map[string]string) *DisplayHandler {
	return &DisplayHandler{service: service, courtAliases: courtAliases}
}

// RegisterRoutes registers the display routes on the given router group.
func (h *DisplayHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/courts/:court/show-message", h.ShowMessage)
	r.GET("/bookings", h.ListBookings)
}

// ShowMessage handles GET /courts/:court/show-message. The court may be
// a short bay number or a raw platform court ID. Returns the message
// payload or 404 when nothing should be shown.
func (h *DisplayHandler) ShowMessage(c *gin.Context) {
	courtID := h.resolveCourt(c.Param("court"))

	now := time.Now().UTC()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "invalid now parameter, want RFC 3339")
			return
		}
		now = parsed.UTC()
	}

	msg := h.service.ShowMessageForCourt(c.Request.Context(), courtID, now)
	if msg == nil {
		response.NotFound(c, "no message for court "+courtID)
		return
	}

	response.OK(c, msg)
}

// ListBookings handles GET /bookings.
func (h *DisplayHandler) ListBookings(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	bookings, err := h.service.ListRecentBookings(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, bookings)
}

func (h *DisplayHandler) resolveCourt(court string) string {
	if id, ok := h.courtAliases[court]; ok {
		return id
	}
	return court
}
