package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/pkg/storage"
	"github.com/matjiblog/matjiblog-backend/pkg/utils"
)

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrImageRequired   = errors.New("image file is required")
	ErrInvalidImage    = errors.New("unsupported image type")
)

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	userRepo  *repository.UserRepository
	storage   storage.ObjectStorage
	logger    *zap.Logger
}

func NewPhotoService(photoRepo *repository.PhotoRepository, userRepo *repository.UserRepository, objStorage storage.ObjectStorage, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		userRepo:  userRepo,
		storage:   objStorage,
		logger:    logger,
	}
}

func (s *PhotoService) Create(userID uint, form models.PhotoForm, file *multipart.FileHeader) (*models.Photo, error) {
	if file == nil {
		return nil, ErrImageRequired
	}

	key, url, err := s.uploadImage(userID, file)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		UserID:     userID,
		Name:       form.Name,
		Memo:       form.Memo,
		Location:   models.Location{Address: form.Address, Lat: form.Lat, Lng: form.Lng},
		Rating:     form.Rating,
		ImageURL:   url,
		ImageKey:   key,
		Tags:       form.Tags,
		Visited:    form.Visited,
		IsPublic:   form.IsPublic,
		PriceRange: form.PriceRange,
		VisitedAt:  form.VisitedAt,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		// The object is already stored; don't leave it orphaned.
		_ = s.storage.Delete(key)
		return nil, err
	}

	return photo, nil
}

func (s *PhotoService) Update(photoID, userID uint, form models.PhotoForm, file *multipart.FileHeader) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByIDForUser(photoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}

	if file != nil {
		key, url, err := s.uploadImage(userID, file)
		if err != nil {
			return nil, err
		}
		oldKey := photo.ImageKey
		photo.ImageKey = key
		photo.ImageURL = url
		if oldKey != "" {
			if err := s.storage.Delete(oldKey); err != nil {
				s.logger.Warn("failed to delete replaced image", zap.String("key", oldKey))
			}
		}
	}

	photo.Name = form.Name
	photo.Memo = form.Memo
	photo.Location = models.Location{Address: form.Address, Lat: form.Lat, Lng: form.Lng}
	photo.Rating = form.Rating
	photo.Tags = form.Tags
	photo.Visited = form.Visited
	photo.IsPublic = form.IsPublic
	photo.PriceRange = form.PriceRange
	photo.VisitedAt = form.VisitedAt

	if err := s.photoRepo.Update(photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Delete(photoID, userID uint) error {
	photo, err := s.photoRepo.GetByIDForUser(photoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if err := s.storage.Delete(photo.ImageKey); err != nil {
		s.logger.Warn("failed to delete stored image", zap.String("key", photo.ImageKey))
	}

	return s.photoRepo.Delete(photo)
}

func (s *PhotoService) Get(photoID, userID uint) (*models.PhotoResponse, error) {
	photo, err := s.photoRepo.GetByIDForUser(photoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	resp := toPhotoResponse(photo, userID, true)
	return &resp, nil
}

func (s *PhotoService) ListMine(userID uint, q repository.PhotoQuery) (*models.PhotoListResponse, error) {
	photos, total, err := s.photoRepo.ListByOwner(userID, q)
	if err != nil {
		return nil, err
	}
	return buildListResponse(photos, total, q, userID), nil
}

func (s *PhotoService) PublicFeed(callerID uint, q repository.PhotoQuery) (*models.PhotoListResponse, error) {
	photos, total, err := s.photoRepo.ListPublic(q)
	if err != nil {
		return nil, err
	}
	return buildListResponse(photos, total, q, callerID), nil
}

func (s *PhotoService) UserPublicPhotos(targetUserID, callerID uint, q repository.PhotoQuery) (*models.PhotoListResponse, *models.User, error) {
	user, err := s.userRepo.GetActiveByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	photos, total, err := s.photoRepo.ListPublicByOwner(targetUserID, q)
	if err != nil {
		return nil, nil, err
	}
	return buildListResponse(photos, total, q, callerID), user, nil
}

// AddComment allows commenting on public photos and on the caller's own.
// Anything else reads as not found.
func (s *PhotoService) AddComment(photoID, userID uint, text string) (*models.CommentResponse, error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if !photo.IsPublic && photo.UserID != userID {
		return nil, ErrPhotoNotFound
	}

	comment := &models.Comment{
		PhotoID: photoID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.photoRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &models.CommentResponse{
		ID:          comment.ID,
		UserID:      comment.UserID,
		DisplayName: user.DisplayName,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt,
	}, nil
}

// DeleteComment is allowed for the comment author and the photo owner.
func (s *PhotoService) DeleteComment(photoID, commentID, userID uint) error {
	comment, err := s.photoRepo.GetComment(commentID, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID && photo.UserID != userID {
		return ErrCommentNotFound
	}
	return s.photoRepo.DeleteComment(comment)
}

// ToggleLike likes the photo, or removes the caller's existing like.
func (s *PhotoService) ToggleLike(photoID, userID uint) (liked bool, likeCount int64, err error) {
	photo, err := s.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrPhotoNotFound
		}
		return false, 0, err
	}
	if !photo.IsPublic && photo.UserID != userID {
		return false, 0, ErrPhotoNotFound
	}

	existing, err := s.photoRepo.GetLike(photoID, userID)
	switch {
	case err == nil:
		if err := s.photoRepo.DeleteLike(existing); err != nil {
			return false, 0, err
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.photoRepo.CreateLike(&models.Like{PhotoID: photoID, UserID: userID}); err != nil {
			return false, 0, err
		}
		liked = true
	default:
		return false, 0, err
	}

	likeCount, err = s.photoRepo.CountLikes(photoID)
	return liked, likeCount, err
}

func (s *PhotoService) uploadImage(userID uint, file *multipart.FileHeader) (key, url string, err error) {
	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return "", "", ErrInvalidImage
	}

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	key = fmt.Sprintf("photos/%d/%s%s", userID, utils.GenerateRandomString(16), filepath.Ext(file.Filename))
	if err := s.storage.Upload(key, src, file.Size, contentType); err != nil {
		return "", "", err
	}
	return key, s.storage.PublicURL(key), nil
}

func buildListResponse(photos []models.Photo, total int64, q repository.PhotoQuery, callerID uint) *models.PhotoListResponse {
	q.Normalize()

	responses := make([]models.PhotoResponse, 0, len(photos))
	for i := range photos {
		responses = append(responses, toPhotoResponse(&photos[i], callerID, false))
	}

	return &models.PhotoListResponse{
		Photos:      responses,
		TotalCount:  total,
		TotalPages:  q.TotalPages(total),
		CurrentPage: q.Page,
	}
}

func toPhotoResponse(photo *models.Photo, callerID uint, withComments bool) models.PhotoResponse {
	liked := false
	for _, like := range photo.Likes {
		if like.UserID == callerID {
			liked = true
			break
		}
	}

	resp := models.PhotoResponse{
		ID:           photo.ID,
		UserID:       photo.UserID,
		Name:         photo.Name,
		Memo:         photo.Memo,
		Location:     photo.Location,
		Rating:       photo.Rating,
		ImageURL:     photo.ImageURL,
		Tags:         photo.Tags,
		Visited:      photo.Visited,
		IsPublic:     photo.IsPublic,
		PriceRange:   photo.PriceRange,
		VisitedAt:    photo.VisitedAt,
		LikeCount:    len(photo.Likes),
		CommentCount: len(photo.Comments),
		Liked:        liked,
		CreatedAt:    photo.CreatedAt,
		UpdatedAt:    photo.UpdatedAt,
	}

	if withComments {
		resp.Comments = make([]models.CommentResponse, 0, len(photo.Comments))
		for _, c := range photo.Comments {
			resp.Comments = append(resp.Comments, models.CommentResponse{
				ID:          c.ID,
				UserID:      c.UserID,
				DisplayName: c.User.DisplayName,
				Text:        c.Text,
				CreatedAt:   c.CreatedAt,
			})
		}
	}
	return resp
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
