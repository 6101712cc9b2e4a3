package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	"cms-system/internal/repositories"
	"cms-system/pkg/config"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
	GetProfile(ctx context.Context, claims *dto.UserClaims) (*dto.UserProfileDTO, error)
	RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	user, err := s.userRepo.FindUserByEmailOrLogin(ctx, payload.Login)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Попытка входа деактивированного пользователя", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetUserByID: не удалось найти пользователя", zap.Uint64("userID", userID), zap.Error(err))
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// GetProfile отдаёт профиль текущего пользователя. Роли и привилегии
// берутся из уже загруженных claims, а не повторным запросом к БД.
func (s *AuthService) GetProfile(ctx context.Context, claims *dto.UserClaims) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return &dto.UserProfileDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FIO:         user.Fio,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
	}, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error {
	logger := s.logger.With(zap.String("email", payload.Email))

	// Защита от спама - не чаще одного запроса в минуту
	spamProtectionKey := fmt.Sprintf("reset_spam_protect:%s", payload.Email)
	if _, err := s.cacheRepo.Get(ctx, spamProtectionKey); err == nil {
		logger.Warn("Слишком частые запросы на сброс пароля")
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			"Запрашивать сброс пароля можно не чаще одного раза в минуту",
			nil,
		)
	}

	user, err := s.userRepo.FindUserByEmailOrLogin(ctx, payload.Email)
	if err != nil || user == nil {
		// Тихо выходим, не сообщаем фронту существует ли пользователь
		logger.Warn("Попытка сброса пароля для несуществующего пользователя")
		return nil
	}

	s.cacheRepo.Set(ctx, spamProtectionKey, "active", time.Minute)

	resetToken := uuid.New().String()
	cacheKey := fmt.Sprintf("reset_email:%s", resetToken)
	if err := s.cacheRepo.Set(ctx, cacheKey, user.ID, s.cfg.ResetTokenTTL); err != nil {
		logger.Error("Не удалось сохранить токен сброса в кеш", zap.Error(err))
		return apperrors.ErrInternalServer
	}

	// TODO: отправка письма, пока токен только в логах
	logger.Warn("Токен сброса пароля", zap.Uint64("userID", user.ID), zap.String("reset_token", resetToken))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	cacheKey := fmt.Sprintf("reset_email:%s", payload.Token)
	userIDStr, err := s.cacheRepo.Get(ctx, cacheKey)
	if err != nil {
		return apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный или истекший токен сброса пароля",
			err,
		)
	}
	s.cacheRepo.Del(ctx, cacheKey)

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		return apperrors.NewHttpError(
			http.StatusInternalServerError,
			"Ошибка получения ID пользователя из кеша",
			err,
		)
	}

	hashedPassword, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка хэширования нового пароля", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обновления пароля пользователя", err)
	}

	s.logger.Info("Пароль для пользователя успешно сброшен", zap.Uint64("userID", userID))
	return nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	lockoutKey := fmt.Sprintf("lockout:%d", userID)

	// Если ключ существует - аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Аккаунт временно заблокирован. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			nil,
		)
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	attempts, _ := s.cacheRepo.Incr(ctx, attemptsKey)
	s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%d", userID)
		s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	lockoutKey := fmt.Sprintf("lockout:%d", userID)
	s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
