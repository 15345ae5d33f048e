package controller

import (
	"ai-docgen-be/internal/dto"
	"ai-docgen-be/internal/pkg/serverutils"
	"ai-docgen-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRepositoryController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Register(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type repositoryController struct {
	repositoryService service.IRepositoryService
}

func NewRepositoryController(repositoryService service.IRepositoryService) IRepositoryController {
	return &repositoryController{
		repositoryService: repositoryService,
	}
}

func (c *repositoryController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/repository/v1")
	h.Post("", authMiddleware, c.Register)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", authMiddleware, c.Delete)
}

func (c *repositoryController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRepositoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.repositoryService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success register repository", res))
}

func (c *repositoryController) List(ctx *fiber.Ctx) error {
	res, err := c.repositoryService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list repositories", res))
}

func (c *repositoryController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid repository ID"))
	}

	res, err := c.repositoryService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Repository not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show repository", res))
}

func (c *repositoryController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid repository ID"))
	}

	if err := c.repositoryService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete repository", nil))
}
