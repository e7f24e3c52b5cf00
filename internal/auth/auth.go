package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
	"github.com/Guztaver/merendaEscolar/internal/users"
)

// ContextUserKey is the gin context key holding the authenticated user id
const ContextUserKey = "userID"

// Service issues and validates JWT access tokens
type Service struct {
	users    *users.Service
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an auth service on top of the user service
func NewService(userService *users.Service, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:    userService,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// LoginInput carries the credentials of a login request
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the payload returned on successful authentication
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(input LoginInput) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(input.Email)
	if err != nil || !s.users.CheckPassword(user, input.Password) {
		// Same answer for unknown email and wrong password
		return nil, apperr.Invalid("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, User: user}, nil
}

// Register creates a user and immediately issues a token for it
func (s *Service) Register(input users.CreateUserInput) (*TokenResponse, error) {
	user, err := s.users.Create(input)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, User: user}, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a token string and returns the user id it carries
func (s *Service) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Invalid("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Invalid("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.Invalid("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperr.Invalid("token has no subject")
	}
	return sub, nil
}

// Middleware handles JWT authentication for protected route groups
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := s.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserID extracts the authenticated user id from the request context
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserKey)
	s, _ := id.(string)
	return s
}
