package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/pkg/storage"
)

type UserService struct {
	userRepo  *repository.UserRepository
	photoRepo *repository.PhotoRepository
	storage   storage.ObjectStorage
	logger    *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, photoRepo *repository.PhotoRepository, objStorage storage.ObjectStorage, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		photoRepo: photoRepo,
		storage:   objStorage,
		logger:    logger,
	}
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *UserService) AdminUpdateUser(id uint, req models.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		if user.IsActive {
			// Reactivation clears the lockout counter.
			user.LoginAttempts = 0
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user together with their photos, comments and
// likes. Reports are kept as audit records with dangling ids. The steps are
// not transactional across the object store, so orphaned S3 objects are
// possible when a later step fails.
func (s *UserService) DeleteAccount(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	keys, err := s.photoRepo.GetKeysByOwner(user.ID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.storage.Delete(key); err != nil {
			s.logger.Warn("orphaned object after account deletion", zap.String("key", key))
		}
	}

	if err := s.photoRepo.DeleteByOwner(user.ID); err != nil {
		return err
	}
	if err := s.photoRepo.DeleteCommentsByUser(user.ID); err != nil {
		return err
	}
	if err := s.photoRepo.DeleteLikesByUser(user.ID); err != nil {
		return err
	}

	return s.userRepo.Delete(user.ID)
}
