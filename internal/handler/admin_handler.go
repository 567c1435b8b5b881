package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/service"
)

type AdminHandler struct {
	statsService *service.StatsService
}

func NewAdminHandler(statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
	}
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.statsService.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}
