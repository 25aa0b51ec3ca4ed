package controller

import (
	"encoding/json"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/pkg/logger"
	"checkinly-be/internal/service"
	"checkinly-be/pkg/payment"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandlePayment(ctx *fiber.Ctx) error
}

type webhookController struct {
	service   service.IDepositService
	serverKey string
	logger    logger.ILogger
}

func NewWebhookController(service service.IDepositService, serverKey string, log logger.ILogger) IWebhookController {
	return &webhookController{
		service:   service,
		serverKey: serverKey,
		logger:    log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("/payment", c.HandlePayment)
}

// HandlePayment verifies the provider signature before acting on any
// payload field, then hands off to reconciliation. A processing failure
// returns 500 so the provider redelivers; everything else is a 200 ack.
func (c *webhookController) HandlePayment(ctx *fiber.Ctx) error {
	raw := make([]byte, len(ctx.Body()))
	copy(raw, ctx.Body())

	var req dto.PaymentWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return apperr.Validation("malformed notification payload")
	}

	if !payment.VerifySignature(req.OrderId, req.StatusCode, req.GrossAmount, c.serverKey, req.SignatureKey) {
		c.logger.Warn("WebhookController", "Signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperr.Signature("invalid notification signature")
	}

	if err := c.service.HandlePaymentNotification(ctx.Context(), raw, &req); err != nil {
		c.logger.Error("WebhookController", "Notification processing failed", map[string]interface{}{
			"order_id": req.OrderId,
			"error":    err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "notification processing failed")
	}

	return ctx.JSON(dto.WebhookAckResponse{Received: true})
}
