package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"golang.org/x/crypto/bcrypt"
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

type AuthService struct {
	userRepo               repositories.UserRepositoryImpl
	tokens                 TokenIssuer
	allowAdminRegistration bool
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, tokens TokenIssuer, allowAdminRegistration bool) *AuthService {
	return &AuthService{
		userRepo:               userRepo,
		tokens:                 tokens,
		allowAdminRegistration: allowAdminRegistration,
	}
}

// Register creates a customer account. The admin role is only granted when
// the service was built with admin registration enabled.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	role := strings.ToLower(strings.TrimSpace(input.Role))
	switch role {
	case "", models.RoleCustomer:
		role = models.RoleCustomer
	case models.RoleAdmin:
		if !s.allowAdminRegistration {
			return nil, apperror.InvalidFields("Invalid request data", map[string]string{
				"role": "admin registration is disabled",
			})
		}
	default:
		return nil, apperror.InvalidFields("Invalid request data", map[string]string{
			"role": "role must be one of admin, customer",
		})
	}

	return s.createUser(ctx, email, input.Password, role)
}

// CreateAdmin bypasses the registration switch; it backs the create-admin
// command.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	return s.createUser(ctx, strings.ToLower(strings.TrimSpace(email)), password, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, email, password, role string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email is already registered")
	}

	user := &models.User{Email: email, Password: password, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, apperror.Wrap(apperror.KindConflict, "Email is already registered", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("AuthService.createUser: registered %s as %s", user.Email, user.Role)
	return user, nil
}

// Login checks the credentials and returns the user with a fresh bearer
// token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, "", apperror.Unauthorized("Invalid credentials")
		}
		return nil, "", fmt.Errorf("failed to compare password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
