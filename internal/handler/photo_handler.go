package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/internal/service"
	"github.com/matjiblog/matjiblog-backend/pkg/utils"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	validator    *utils.Validator
}

func NewPhotoHandler(photoService *service.PhotoService, validator *utils.Validator) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		validator:    validator,
	}
}

func (h *PhotoHandler) GetMyPhotos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	resp, err := h.photoService.ListMine(userID, photoQueryFromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(resp, ""))
}

func (h *PhotoHandler) GetPublicFeed(c *fiber.Ctx) error {
	// Works both with and without a token; the caller id only drives the
	// per-photo "liked" flag.
	callerID, _ := c.Locals("userID").(uint)

	resp, err := h.photoService.PublicFeed(callerID, photoQueryFromCtx(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
	return c.JSON(models.SuccessResponse(resp, ""))
}

func (h *PhotoHandler) GetUserPublicPhotos(c *fiber.Ctx) error {
	targetID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}
	callerID, _ := c.Locals("userID").(uint)

	list, user, err := h.photoService.UserPublicPhotos(uint(targetID), callerID, photoQueryFromCtx(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"photos": list,
		"user":   user,
	}, ""))
}

func (h *PhotoHandler) GetPhoto(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	userID := c.Locals("userID").(uint)

	resp, err := h.photoService.Get(uint(photoID), userID)
	if err != nil {
		return h.photoError(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, ""))
}

func (h *PhotoHandler) CreatePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	form, err := photoFormFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	if err := h.validator.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("image file is required"))
	}

	photo, err := h.photoService.Create(userID, *form, file)
	if err != nil {
		return h.photoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(photo, "Photo created successfully"))
}

func (h *PhotoHandler) UpdatePhoto(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	userID := c.Locals("userID").(uint)

	form, err := photoFormFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	if err := h.validator.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	// Image is optional on update; the existing one is kept when absent.
	file, _ := c.FormFile("image")

	photo, err := h.photoService.Update(uint(photoID), userID, *form, file)
	if err != nil {
		return h.photoError(c, err)
	}
	return c.JSON(models.SuccessResponse(photo, "Photo updated successfully"))
}

func (h *PhotoHandler) DeletePhoto(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	userID := c.Locals("userID").(uint)

	if err := h.photoService.Delete(uint(photoID), userID); err != nil {
		return h.photoError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Photo deleted successfully"))
}

func (h *PhotoHandler) AddComment(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	userID := c.Locals("userID").(uint)

	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	comment, err := h.photoService.AddComment(uint(photoID), userID, strings.TrimSpace(req.Text))
	if err != nil {
		return h.photoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(comment, "Comment added"))
}

func (h *PhotoHandler) DeleteComment(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	commentID, err := strconv.ParseUint(c.Params("commentId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid comment ID"))
	}
	userID := c.Locals("userID").(uint)

	if err := h.photoService.DeleteComment(uint(photoID), uint(commentID), userID); err != nil {
		return h.photoError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Comment deleted"))
}

func (h *PhotoHandler) ToggleLike(c *fiber.Ctx) error {
	photoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid photo ID"))
	}
	userID := c.Locals("userID").(uint)

	liked, likeCount, err := h.photoService.ToggleLike(uint(photoID), userID)
	if err != nil {
		return h.photoError(c, err)
	}
	return c.JSON(models.SuccessResponse(fiber.Map{
		"liked":      liked,
		"like_count": likeCount,
	}, ""))
}

func (h *PhotoHandler) photoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPhotoNotFound), errors.Is(err, service.ErrCommentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrImageRequired), errors.Is(err, service.ErrInvalidImage):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}

func photoQueryFromCtx(c *fiber.Ctx) repository.PhotoQuery {
	return repository.PhotoQuery{
		Search:     c.Query("search"),
		Tag:        c.Query("tag"),
		Visited:    c.Query("visited"),
		PriceRange: c.Query("priceRange"),
		Sort:       c.Query("sort"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", repository.DefaultPageSize),
	}
}

// photoFormFromCtx reads the multipart fields shared by create and update.
func photoFormFromCtx(c *fiber.Ctx) (*models.PhotoForm, error) {
	rating, err := strconv.Atoi(c.FormValue("rating"))
	if err != nil {
		return nil, errors.New("rating must be a number between 1 and 5")
	}

	form := &models.PhotoForm{
		Name:       strings.TrimSpace(c.FormValue("name")),
		Memo:       strings.TrimSpace(c.FormValue("memo")),
		Address:    strings.TrimSpace(c.FormValue("address")),
		Rating:     rating,
		Visited:    c.FormValue("visited") == "true",
		IsPublic:   c.FormValue("isPublic") == "true",
		PriceRange: c.FormValue("priceRange"),
	}

	if v := c.FormValue("lat"); v != "" {
		if form.Lat, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, errors.New("lat must be a number")
		}
	}
	if v := c.FormValue("lng"); v != "" {
		if form.Lng, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, errors.New("lng must be a number")
		}
	}

	if v := c.FormValue("tags"); v != "" {
		var raw []string
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return nil, errors.New("tags must be a JSON array of strings")
		}
		form.Tags = normalizeTags(raw)
	}

	if v := c.FormValue("visitedAt"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("visitedAt must be an RFC3339 timestamp")
		}
		form.VisitedAt = &t
	}

	return form, nil
}

// normalizeTags trims and drops blanks. Duplicates are kept on purpose: the
// stored sequence is exactly what the client submitted.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
