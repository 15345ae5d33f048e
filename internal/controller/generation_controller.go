package controller

import (
	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/serverutils"
	"ai-docgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Trigger(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
}

type generationController struct {
	queueService service.IGenerationQueueService
}

func NewGenerationController(queueService service.IGenerationQueueService) IGenerationController {
	return &generationController{
		queueService: queueService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/generation/v1")
	h.Post("trigger", authMiddleware, c.Trigger)
	h.Get("session/:id", c.ShowSession)
	h.Get("repository/:id/sessions", c.ListSessions)
}

func (c *generationController) Trigger(ctx *fiber.Ctx) error {
	var req dto.TriggerGenerationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queueService.Trigger(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success trigger generation", res))
}

func (c *generationController) ShowSession(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session ID"))
	}

	res, err := c.queueService.ShowSession(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *generationController) ListSessions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid repository ID"))
	}

	res, err := c.queueService.ListSessions(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}
