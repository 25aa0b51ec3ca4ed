package controller

import (
	"strconv"
	"strings"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDepositController interface {
	RegisterRoutes(r fiber.Router)
	Capture(ctx *fiber.Ctx) error
	Action(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type depositController struct {
	service service.IDepositService
}

func NewDepositController(service service.IDepositService) IDepositController {
	return &depositController{service: service}
}

func (c *depositController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/deposit/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Capture)
	h.Get(":id", c.Show)
	h.Post(":id", c.Action)
	h.Delete(":id", c.Delete)
}

func (c *depositController) Capture(ctx *fiber.Ctx) error {
	var req dto.CaptureDepositRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Validation("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Capture(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Deposit captured", res))
}

// Action dispatches POST /deposit/v1/:id?action=... sub-operations.
// Today the only action is "refund".
func (c *depositController) Action(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	action := ctx.Query("action")
	if action != "refund" {
		return apperr.Validation("unknown action %q", action)
	}

	var req dto.RefundDepositRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return apperr.Validation("malformed request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Refund(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *depositController) Show(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	expandGuest, expandProperty := parseExpand(ctx.Query("expand"))

	res, err := c.service.Show(ctx.Context(), id, expandGuest, expandProperty)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show deposit", res))
}

func (c *depositController) GetAll(ctx *fiber.Ctx) error {
	q, err := parseListQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *depositController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Delete(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// parseListQuery rejects malformed filter values before any query runs.
func parseListQuery(ctx *fiber.Ctx) (*dto.ListDepositsQuery, error) {
	q := &dto.ListDepositsQuery{
		Search:   ctx.Query("q"),
		Status:   ctx.Query("status"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("pageSize", 0),
	}

	if v := ctx.Query("propertyId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperr.Validation("malformed propertyId")
		}
		q.PropertyId = &id
	}
	if v := ctx.Query("guestId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperr.Validation("malformed guestId")
		}
		q.GuestId = &id
	}
	if v := ctx.Query("minAmount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, apperr.Validation("minAmount must be an integer")
		}
		q.MinAmount = &n
	}
	if v := ctx.Query("maxAmount"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, apperr.Validation("maxAmount must be an integer")
		}
		q.MaxAmount = &n
	}
	if v := ctx.Query("dateFrom"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, apperr.Validation("malformed dateFrom")
		}
		q.DateFrom = &t
	}
	if v := ctx.Query("dateTo"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, apperr.Validation("malformed dateTo")
		}
		q.DateTo = &t
	}

	q.ExpandGuest, q.ExpandProperty = parseExpand(ctx.Query("expand"))

	return q, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseExpand(v string) (guest, property bool) {
	for _, part := range strings.Split(v, ",") {
		switch strings.TrimSpace(part) {
		case "guest":
			guest = true
		case "property":
			property = true
		}
	}
	return guest, property
}

func parseUUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("malformed %s", name)
	}
	return id, nil
}
