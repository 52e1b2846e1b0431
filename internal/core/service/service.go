package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
	"github.com/orderflow-io/orderflow/internal/core/utils"
)

// Service implements the command API. Every mutation goes through the unit
// of work so the aggregate state and its domain events commit atomically.
type Service struct {
	repo         port.Repository
	uow          port.UnitOfWork
	tokenService port.TokenService
	logger       *zap.Logger
}

func NewService(repo port.Repository, uow port.UnitOfWork,
	tokenService port.TokenService, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		uow:          uow,
		tokenService: tokenService,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, login, password string) (*domain.User, error) {
	exUser, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	newUser, err := s.repo.CreateUser(ctx, &domain.User{
		ID:        uuid.New(),
		Login:     login,
		Password:  hashed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, login, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	if err := utils.ComparePassword(password, user.Password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	refresh := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.InsertRefreshToken(ctx, refresh); err != nil {
		s.logger.Error("Insert refresh token", zap.Error(err))
		return "", domain.ErrInternal
	}

	return token, nil
}
