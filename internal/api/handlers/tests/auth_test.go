package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satishkumarramakoti33/sb-works/internal/api/handlers"
	"github.com/satishkumarramakoti33/sb-works/internal/models"
	"github.com/satishkumarramakoti33/sb-works/internal/services"
	"github.com/satishkumarramakoti33/sb-works/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a mock type for the services.UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockUserService) Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockUserService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserService) GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Ensure mock implements the interface
var _ services.UserService = (*MockUserService)(nil)

func setupAuthHandlerTest() (*gin.Engine, *MockUserService, *handlers.AuthHandler) {
	gin.SetMode(gin.TestMode)
	mockService := new(MockUserService)
	validate := validator.New()
	handler := handlers.NewAuthHandler(mockService, validate)
	router := gin.New()
	return router, mockService, handler
}

func TestAuthHandler_Register_Success(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/register", handler.Register)

	user := &models.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  models.RoleFreelancer,
	}

	mockService.On("Register", mock.Anything, mock.MatchedBy(func(req *dto.RegisterRequest) bool {
		return req.Email == "ada@example.com" && req.Role == "freelancer"
	})).Return(user, nil).Once()

	body := []byte(`{"name":"Ada","email":"ada@example.com","password":"secret123","role":"freelancer"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, models.RoleFreelancer, resp.Role)
	// Credential material never appears in the payload.
	assert.NotContains(t, w.Body.String(), "password")
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/register", handler.Register)

	body := []byte(`{"name":"Ada","email":"not-an-email","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/register", handler.Register)

	body := []byte(`{"name":"Ada","email":"ada@example.com","password":"abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/login", handler.Login)

	user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: models.RoleClient}
	mockService.On("Login", mock.Anything, &dto.LoginRequest{Email: "ada@example.com", Password: "secret123"}).
		Return(user, "access-token", "refresh-token", nil).Once()

	body := []byte(`{"email":"ada@example.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/login", handler.Login)

	mockService.On("Login", mock.Anything, mock.Anything).
		Return(nil, "", "", services.ErrInvalidCredentials).Once()

	body := []byte(`{"email":"ada@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/refresh", handler.Refresh)

	mockService.On("Refresh", mock.Anything, &dto.RefreshRequest{RefreshToken: "old-token"}).
		Return("new-access", "new-refresh", nil).Once()

	body := []byte(`{"refresh_token":"old-token"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/refresh", handler.Refresh)

	body := []byte(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Refresh")
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.POST("/auth/logout", handler.Logout)

	mockService.On("Logout", mock.Anything, &dto.LogoutRequest{RefreshToken: "some-token"}).Return(nil).Once()

	body := []byte(`{"refresh_token":"some-token"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Me_Success(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	caller := models.Identity{UserID: uuid.New(), Role: models.RoleClient}
	router.GET("/auth/me", identityInjector(caller), handler.Me)

	user := &models.User{ID: caller.UserID, Name: "Ada", Email: "ada@example.com", Role: models.RoleClient}
	mockService.On("GetByID", mock.Anything, &dto.GetUserByIDRequest{ID: caller.UserID}).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, caller.UserID, resp.ID)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	router, mockService, handler := setupAuthHandlerTest()
	router.GET("/auth/me", handler.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}
