package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// AuthService инкапсулирует регистрацию, вход и проверку роли.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// SignUp создаёт пользователя с ролью user.
func (s *AuthService) SignUp(ctx context.Context, in dto.Credentials) (*dto.AuthResult, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("auth service: не удалось захешировать пароль: %w", err))
	}

	user := &models.User{Email: email, PasswordHash: string(passHash)}
	profile := &models.Profile{Role: models.RoleUser}

	if err := s.repo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperror.ErrEmailTaken
		}
		return nil, apperror.Internal(err)
	}

	return s.issue(user, profile)
}

// SignIn проверяет учётные данные и выпускает токен.
func (s *AuthService) SignIn(ctx context.Context, in dto.Credentials) (*dto.AuthResult, error) {
	email := validation.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	profile, err := s.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.issue(user, profile)
}

// Session возвращает пользователя, профиль и признак администратора.
func (s *AuthService) Session(ctx context.Context, userID uuid.UUID) (*dto.Session, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, apperror.Internal(err)
	}

	profile, err := s.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.Session{User: user, Profile: profile, IsAdmin: profile.IsAdmin()}, nil
}

// IsAdmin читает роль из профиля при каждом вызове, а не из токена.
func (s *AuthService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return false, nil
		}
		return false, apperror.Internal(err)
	}
	return profile.IsAdmin(), nil
}

// ParseToken проверяет access токен.
func (s *AuthService) ParseToken(token string) (uuid.UUID, string, error) {
	return s.tokenManager.Parse(token)
}

// CreateOrPromoteAdmin создаёт администратора или повышает существующего пользователя.
// Для существующего пользователя непустой пароль заменяет старый.
func (s *AuthService) CreateOrPromoteAdmin(ctx context.Context, in dto.Credentials) (*models.Profile, bool, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, false, apperror.Validation(err.Error())
	}

	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, false, apperror.Validation(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, apperror.Internal(err)
		}
		user = &models.User{Email: email, PasswordHash: string(hash)}
		profile := &models.Profile{Role: models.RoleAdmin}
		if err := s.repo.CreateWithProfile(ctx, user, profile); err != nil {
			return nil, false, apperror.Internal(err)
		}
		return profile, true, nil
	case err != nil:
		return nil, false, apperror.Internal(err)
	}

	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, false, apperror.Validation(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, apperror.Internal(err)
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return nil, false, apperror.Internal(err)
		}
	}

	profile := &models.Profile{ID: user.ID, Email: user.Email, Role: models.RoleAdmin}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, false, apperror.Internal(err)
	}
	return profile, false, nil
}

// profileFor возвращает профиль, создавая дефолтный с ролью user при отсутствии.
func (s *AuthService) profileFor(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, apperror.Internal(err)
	}

	profile = &models.Profile{ID: user.ID, Email: user.Email, Role: models.RoleUser}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		logger.L().WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Warn("auth service: не удалось создать профиль")
	}
	return profile, nil
}

func (s *AuthService) issue(user *models.User, profile *models.Profile) (*dto.AuthResult, error) {
	token, err := s.tokenManager.Generate(user, profile.Role)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("auth service: не удалось выпустить токен: %w", err))
	}
	return &dto.AuthResult{
		User:      user,
		Profile:   profile,
		Token:     token,
		ExpiresIn: int64(s.tokenManager.TTL() / time.Second),
	}, nil
}
