package controller

import (
	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuideController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAllByProperty(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ShowShared(ctx *fiber.Ctx) error
	QR(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type guideController struct {
	service service.IGuideService
}

func NewGuideController(service service.IGuideService) IGuideController {
	return &guideController{service: service}
}

func (c *guideController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guide/v1")

	// Public share endpoint, resolved by token instead of id.
	h.Get("/shared/:token", c.ShowShared)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("/property/:propertyId", c.GetAllByProperty)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Get(":id/qr", c.QR)
	h.Post(":id/send", c.Send)
}

func (c *guideController) Create(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateGuideRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create guide", res))
}

func (c *guideController) Show(ctx *fiber.Ctx) error {
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

	return ctx.JSON(serverutils.SuccessResponse("Success show guide", res))
}

func (c *guideController) GetAllByProperty(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	propertyId, err := parseUUIDParam(ctx, "propertyId")
	if err != nil {
		return err
	}

	res, err := c.service.GetAllByProperty(ctx.Context(), hostId, propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get guides", res))
}

func (c *guideController) Update(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateGuideRequest
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

	return ctx.JSON(serverutils.SuccessResponse("Success update guide", res))
}

func (c *guideController) Delete(ctx *fiber.Ctx) error {
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

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete guide", nil))
}

func (c *guideController) ShowShared(ctx *fiber.Ctx) error {
	token := ctx.Params("token")

	res, err := c.service.ShowShared(ctx.Context(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show guide", res))
}

func (c *guideController) QR(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	png, err := c.service.RenderQR(ctx.Context(), hostId, id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(png)
}

func (c *guideController) Send(ctx *fiber.Ctx) error {
	hostId, ok := serverutils.UserIDFromLocals(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendGuideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Send(ctx.Context(), hostId, id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Guide queued for delivery", nil))
}
