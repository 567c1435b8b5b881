package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/internal/service"
	"github.com/matjiblog/matjiblog-backend/pkg/utils"
)

type ReportHandler struct {
	reportService *service.ReportService
	validator     *utils.Validator
}

func NewReportHandler(reportService *service.ReportService, validator *utils.Validator) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validator:     validator,
	}
}

func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	report, err := h.reportService.Create(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReportTarget) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(report, "Report submitted"))
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	resp, err := h.reportService.List(
		c.Query("status"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", repository.DefaultPageSize),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(resp, ""))
}

func (h *ReportHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid report ID"))
	}
	adminID := c.Locals("userID").(uint)

	var req models.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	report, err := h.reportService.Resolve(uint(reportID), adminID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrReportAlreadyHandled):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
		}
	}
	return c.JSON(models.SuccessResponse(report, "Report "+report.Status))
}
