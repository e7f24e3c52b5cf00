package users

import (
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/Guztaver/merendaEscolar/internal/apperr"
	"github.com/Guztaver/merendaEscolar/internal/models"
)

// Service handles user management
type Service struct {
	db *gorm.DB
}

// NewService creates a user service backed by the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateUserInput carries the fields for a new user
type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// UpdateUserInput carries the optional fields of a user update
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Create stores a new user with a bcrypt-hashed password
func (s *Service) Create(input CreateUserInput) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)
	if count > 0 {
		return nil, apperr.Invalid("a user with email %s already exists", input.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users
func (s *Service) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a single user by id
func (s *Service) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a single user by email
func (s *Service) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, apperr.NotFound("user", email)
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update, re-hashing the password when one is given
func (s *Service) Update(id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user
func (s *Service) Delete(id string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(user).Error
}

// CheckPassword verifies a plaintext password against the stored hash
func (s *Service) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
