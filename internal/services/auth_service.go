package services

import (
	"fmt"
	"strings"
	"time"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime is fixed at 7 days; there is no refresh or revocation.
const tokenLifetime = 7 * 24 * time.Hour

// Claims is the identity a valid token carries.
type Claims struct {
	UserID   string
	Username string
}

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// RegisterUser registers a new user, hashes their password, and saves
// them to the store. Accounts register as verified; the verification
// mail flow lives outside this service.
func (s *AuthService) RegisterUser(user *models.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return apperr.New(apperr.KindValidation, fmt.Sprintf("username '%s' already taken", user.Username))
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperr.New(apperr.KindValidation, fmt.Sprintf("email '%s' already registered", user.Email))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.IsVerified = true

	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	return nil
}

// LoginUser authenticates a verified user and returns the user and a
// signed token. Unknown users, unverified users and wrong passwords all
// fail with the same message.
func (s *AuthService) LoginUser(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil || !user.IsVerified {
		return nil, "", apperr.New(apperr.KindUnauthorized, "unable to login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.KindUnauthorized, "unable to login")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken signs a 7-day token carrying the user's identity under
// the "data" claim.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"data": map[string]interface{}{
			"_id":      user.ID,
			"username": user.Username,
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning the embedded
// identity. Any failure collapses into a single unauthorized outcome.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid token", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	data, ok := mapClaims["data"].(map[string]interface{})
	if !ok {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token")
	}
	userID, _ := data["_id"].(string)
	username, _ := data["username"].(string)
	if userID == "" || username == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token")
	}

	return &Claims{UserID: userID, Username: username}, nil
}
