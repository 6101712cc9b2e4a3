package services

import (
	"context"

	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	"cms-system/internal/repositories"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
	"cms-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func userToDTO(u *entities.User) *dto.UserDTO {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Fio:       u.Fio,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		list = append(list, *userToDTO(&users[i]))
	}
	return list, total, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Ошибка хэширования пароля", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	user := entities.User{
		Username: payload.Username,
		Fio:      payload.Fio,
		Email:    payload.Email,
		Password: hashedPassword,
		IsActive: true,
	}

	id, err := s.userRepo.CreateUser(ctx, user, payload.RoleIDs)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Пользователь создан", zap.Uint64("id", id), zap.String("username", user.Username))
	return s.FindUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Username.Valid {
		user.Username = payload.Username.String
	}
	if payload.Fio.Valid {
		user.Fio = payload.Fio.String
	}
	if payload.Email.Valid {
		user.Email = payload.Email.String
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.userRepo.UpdateUser(ctx, id, *user, payload.RoleIDs); err != nil {
		return nil, err
	}

	// Пароль меняется отдельным запросом, после основного обновления
	if payload.Password.Valid {
		hashedPassword, err := utils.HashPassword(payload.Password.String)
		if err != nil {
			s.logger.Error("Ошибка хэширования пароля", zap.Uint64("id", id), zap.Error(err))
			return nil, apperrors.ErrInternalServer
		}
		if err := s.userRepo.UpdatePassword(ctx, id, hashedPassword); err != nil {
			return nil, err
		}
	}

	return s.FindUserByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	return s.userRepo.DeleteUser(ctx, id)
}
