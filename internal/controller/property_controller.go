package controller

import (
	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPropertyController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type propertyController struct {
	service service.IPropertyService
}

func NewPropertyController(service service.IPropertyService) IPropertyController {
	return &propertyController{service: service}
}

func (c *propertyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *propertyController) Create(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), hostId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create property", res))
}

func (c *propertyController) Show(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), hostId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show property", res))
}

func (c *propertyController) GetAll(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.GetAll(ctx.Context(), hostId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all property", res))
}

func (c *propertyController) Update(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), hostId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update property", res))
}

func (c *propertyController) Delete(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), hostId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete property", nil))
}
