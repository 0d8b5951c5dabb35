package users

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/keshster98/cashfly-backend/internal/auth"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/repository"
	"github.com/keshster98/cashfly-backend/internal/validation"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Me(ctx context.Context, id string) (*domain.User, error)
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User  *domain.User     `json:"user"`
	Token auth.AccessToken `json:"token"`
}

type UserService struct {
	repo       repository.UserRepository
	tokens     *auth.TokenIssuer
	bcryptCost int
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenIssuer, bcryptCost int) *UserService {
	return &UserService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	return s.create(ctx, input.Name, input.Email, input.Password, domain.RoleUser)
}

// Login answers ErrUnauthorized for an unknown email and a wrong password
// alike.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.Password, input.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *UserService) Me(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin creates the admin account on first start. An existing account
// with the same email is left alone.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	if name == "" {
		name = "Administrator"
	}
	if _, err := s.create(ctx, name, email, password, domain.RoleAdmin); err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}

func (s *UserService) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", domain.ErrDuplicateRecord, email)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ UserUseCase = (*UserService)(nil)
