package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/storage"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accessClaims is the payload of an issued access token: subject carries the
// user ID, Role the normalized role string.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type userService struct {
	repo              storage.UserRepository
	tokens            storage.RefreshTokenRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo storage.UserRepository, tokens storage.RefreshTokenRepository, jwtSecret string, jwtExpiration, refreshExpiration time.Duration) UserService {
	return &userService{
		repo:              repo,
		tokens:            tokens,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
	}
}

// Register creates an account with a bcrypt-hashed password. The role is
// normalized once here; it defaults to client when absent.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.RoleClient
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: role must be client or freelancer", ErrValidation)
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("UserService: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error hashing password: %w", err)
	}

	createReq := dto.CreateUserRequest{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	user, err := s.repo.Create(ctx, &createReq)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		log.Printf("UserService: Error creating user: %v", err)
		return nil, fmt.Errorf("internal error creating user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	emailReq := dto.GetUserByEmailRequest{Email: req.Email}
	user, err := s.repo.GetByEmail(ctx, &emailReq)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, "", "", ErrInvalidCredentials
		}
		log.Printf("Error fetching user by email %s during login: %v", req.Email, err)
		return nil, "", "", fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Refresh rotates a refresh token and mints a fresh access token.
func (s *userService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	userID, err := s.tokens.Resolve(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", fmt.Errorf("%w: unknown or expired refresh token", ErrInvalidCredentials)
		}
		log.Printf("Error resolving refresh token: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	user, err := s.repo.GetByID(ctx, &dto.GetUserByIDRequest{ID: userID})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", fmt.Errorf("%w: account no longer exists", ErrInvalidCredentials)
		}
		log.Printf("Error fetching user %s during refresh: %v", userID, err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	// Rotate: the old token is revoked before the new pair is returned.
	if err := s.tokens.Delete(ctx, req.RefreshToken); err != nil {
		log.Printf("Error revoking refresh token during rotation: %v", err)
		return "", "", fmt.Errorf("internal error during refresh: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Logout revokes the refresh token. Revoking an unknown token is not an
// error; the end state is the same.
func (s *userService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.tokens.Delete(ctx, req.RefreshToken); err != nil {
		log.Printf("Error deleting refresh token on logout: %v", err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", user.Email, err)
		return "", fmt.Errorf("failed to generate login token: %w", err)
	}
	return tokenString, nil
}

func (s *userService) issueRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()
	if err := s.tokens.Save(ctx, token, userID, s.refreshExpiration); err != nil {
		log.Printf("Error storing refresh token for user %s: %v", userID, err)
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}
