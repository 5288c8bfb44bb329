package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/application"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/matchi"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/response"
	"go.uber.org/zap"
)

const signatureHeader = "X-Matchi-Signature"

// WebhookHandler handles booking-lifecycle webhook deliveries.
type WebhookHandler struct {
	service *application.WebhookService
	logger  *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *application.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, logger: logger}
}

// RegisterRoutes registers the webhook route on the given router group.
func (h *WebhookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/hook", h.HandleWebhook)
}

// HandleWebhook handles POST /hook. Validation problems return 400 so
// the platform can surface them; internal failures return 200 and are
// only logged, because the platform retries aggressively and the event
// is already in our hands.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	if c.GetHeader(signatureHeader) == "" {
		response.BadRequest(c, "missing webhook signature")
		return
	}

	var env matchi.WebhookEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		response.BadRequest(c, "malformed webhook payload")
		return
	}

	if err := h.service.Handle(c.Request.Context(), env); err != nil {
		if domain.CodeOf(err) == domain.CodeValidation {
			response.Error(c, err)
			return
		}
		h.logger.Error("webhook processing failed",
			zap.String("event_id", env.ID),
			zap.String("detail_type", env.DetailType),
			zap.Error(err),
		)
	}

	c.Status(http.StatusOK)
}
