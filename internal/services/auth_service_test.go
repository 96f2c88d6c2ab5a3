package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"listly/internal/models"
	"listly/internal/services"
	"listly/pkg/apperr"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func notFoundErr(what string) error {
	return apperr.New(apperr.KindNotFound, what+" not found")
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Test successful registration
	user := &models.User{
		Username: "TestUser",
		Email:    "Test@Example.com",
		Password: "password123",
	}
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.IsVerified)
	// Password must have been hashed before hitting the store
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	user2 := &models.User{Username: "testuser", Email: "other@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'testuser' already taken")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	mockRepo.AssertExpectations(t)

	// Test email already registered
	user3 := &models.User{Username: "otheruser", Email: "test@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "otheruser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:         "user-123",
		Username:   "testuser",
		Email:      "test@example.com",
		Password:   string(hashedPassword),
		IsVerified: true,
	}

	// Test successful login
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	loggedIn, token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The identity travels under the "data" claim
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	data, ok := claims["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, user.ID, data["_id"])
	assert.Equal(t, user.Username, data["username"])
	mockRepo.AssertExpectations(t)

	// Test wrong password
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to login")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	mockRepo.AssertExpectations(t)

	// Test user not found; same message as wrong password
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, notFoundErr("user")).Once()
	_, _, err = authService.LoginUser("nonexistentuser", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to login")
	mockRepo.AssertExpectations(t)

	// Test unverified account
	unverified := &models.User{
		ID:       "user-456",
		Username: "pending",
		Password: string(hashedPassword),
	}
	mockRepo.On("GetByUsername", "pending").Return(unverified, nil).Once()
	_, _, err = authService.LoginUser("pending", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to login")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"data": map[string]interface{}{
			"_id":      "user-123",
			"username": "testuser",
		},
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "testuser", claims.Username)

	// Test garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
		"data": map[string]interface{}{
			"_id":      "user-123",
			"username": "testuser",
		},
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token missing the data claim
	bareToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	bareTokenString, _ := bareToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(bareTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
