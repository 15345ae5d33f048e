package controller

import (
	"strconv"

	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	logger logger.ILogger
}

func NewAdminController(log logger.ILogger) IAdminController {
	return &adminController{
		logger: log,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/admin/v1", authMiddleware)
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogDetail)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	level := ctx.Query("level", "")
	if page < 1 {
		page = 1
	}

	logs, err := c.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	logId := ctx.Params("id") // MD5 hash of the log line, not a UUID

	l, err := c.logger.GetLogById(logId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}
