package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository registration and login
// depend on.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByPasswordHash(ctx context.Context, hash string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries the credentials for a token exchange.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthService handles registration and credential verification.
type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account. Email, username and phone number must
// all be unused; each collision reports which field clashed.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, badRequest("Username already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		zap.L().Error("Username lookup failed", zap.Error(err))
		return nil, internal("Failed to register user")
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, badRequest("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		zap.L().Error("Email lookup failed", zap.Error(err))
		return nil, internal("Failed to register user")
	}
	if _, err := s.users.FindByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, badRequest("Phone number already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		zap.L().Error("Phone lookup failed", zap.Error(err))
		return nil, internal("Failed to register user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("Password hashing failed", zap.Error(err))
		return nil, internal("Failed to register user")
	}
	if _, err := s.users.FindByPasswordHash(ctx, string(hash)); err == nil {
		return nil, badRequest("Password already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		zap.L().Error("Password hash lookup failed", zap.Error(err))
		return nil, internal("Failed to register user")
	}

	user := &models.User{
		ID:              uuid.NewString(),
		Email:           req.Email,
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		HashedPassword:  string(hash),
		IsActive:        true,
		IsSuperuser:     false,
		Subscription:    false,
		PurchaseHistory: []models.OrderSnapshot{},
		Cart:            []models.CartItem{},
		Favorites:       []models.CartItem{},
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		zap.L().Error("User insert failed", zap.String("email", req.Email), zap.Error(err))
		return nil, internal("Failed to register user")
	}

	zap.L().Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and returns a signed access token. Lookup
// and password failures collapse into one message so the response does
// not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *models.User, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, unauthorized("Invalid email or password")
		}
		zap.L().Error("Email lookup failed", zap.Error(err))
		return "", nil, internal("Failed to log in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", nil, unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsSuperuser)
	if err != nil {
		zap.L().Error("Token generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", nil, internal("Failed to log in")
	}
	return token, user, nil
}
