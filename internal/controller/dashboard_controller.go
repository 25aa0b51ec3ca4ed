package controller

import (
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/summary", c.Summary)
}

func (c *dashboardController) Summary(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Summary(ctx.Context(), hostId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard summary", res))
}
