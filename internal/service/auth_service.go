package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matjiblog/matjiblog-backend/internal/models"
	"github.com/matjiblog/matjiblog-backend/internal/repository"
	"github.com/matjiblog/matjiblog-backend/pkg/bcrypt"
	"github.com/matjiblog/matjiblog-backend/pkg/email"
	jwtPkg "github.com/matjiblog/matjiblog-backend/pkg/jwt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// LoginRejectedError carries the attempt counter for a failed login. Locked
// is true on the attempt that deactivated the account.
type LoginRejectedError struct {
	RemainingAttempts int
	Locked            bool
}

func (e *LoginRejectedError) Error() string {
	if e.Locked {
		return "account locked after too many failed login attempts"
	}
	return "invalid email or password"
}

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	jwtManager   *jwtPkg.Manager
	logger       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService, jwtManager *jwtPkg.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	emailAddr := NormalizeEmail(req.Email)

	exists, err := s.userRepo.EmailExists(emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       emailAddr,
		Password:    hashedPassword,
		DisplayName: strings.TrimSpace(req.DisplayName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Role:        models.RoleUser,
		IsActive:    true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.DisplayName)

	return user, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetActiveByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		attempts, incErr := s.userRepo.RegisterFailedLogin(user.ID, models.MaxLoginAttempts)
		if incErr != nil {
			return nil, incErr
		}
		if attempts >= models.MaxLoginAttempts {
			s.logger.Warn("account locked",
				zap.Uint("user_id", user.ID),
				zap.Int("attempts", attempts),
			)
			return nil, &LoginRejectedError{Locked: true}
		}
		return nil, &LoginRejectedError{RemainingAttempts: models.MaxLoginAttempts - attempts}
	}

	now := time.Now()
	if err := s.userRepo.RegisterSuccessfulLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LoginAttempts = 0
	user.LastLoginAt = &now

	token, err := s.jwtManager.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &models.AuthResponse{
		Token:         token,
		User:          *user,
		LoginAttempts: 0,
	}, nil
}

// Me re-queries the store, so a deactivated user gets 404 here even while
// their token is still signature-valid.
func (s *AuthService) Me(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetActiveByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
