package service

import (
	"context"
	"errors"
	"time"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/entity"
	"checkinly-be/internal/pkg/apperr"
	"checkinly-be/internal/pkg/serverutils"
	"checkinly-be/internal/repository/implementation"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, tokenTTL time.Duration) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         entity.UserRoleHost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		if errors.Is(err, implementation.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Validation("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Validation("invalid email or password")
	}

	token, err := serverutils.GenerateToken(user.Id, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	return &dto.UserDTO{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}
