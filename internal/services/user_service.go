package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Register creates a new active user with the default USER role.
func (s *userService) Register(name, email, password string, anniversaryDate *time.Time) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:            name,
		Email:           strings.ToLower(email),
		Password:        string(hashedPassword),
		Role:            models.RoleUser,
		Active:          true,
		AnniversaryDate: anniversaryDate,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves an active user by email. It backs the login
// path and is not principal-gated.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND active = ?", strings.ToLower(email), true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id. Self-service rule: a user may read
// their own record, admins may read anyone's.
func (s *userService) GetUserByID(p Principal, id string) (*models.User, error) {
	if err := authorizeOwner(p, id); err != nil {
		return nil, err
	}
	return s.findUser(id)
}

// UpdateProfile updates a user's mutable profile fields, for the user
// themselves or an admin.
func (s *userService) UpdateProfile(p Principal, id string, name string, anniversaryDate *time.Time) (*models.User, error) {
	if err := authorizeOwner(p, id); err != nil {
		return nil, err
	}

	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if anniversaryDate != nil {
		user.AnniversaryDate = anniversaryDate
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// Activate re-enables a deactivated user account.
func (s *userService) Activate(p Principal, id string) (*models.User, error) {
	return s.setActive(p, id, true)
}

// Deactivate disables a user account without removing it.
func (s *userService) Deactivate(p Principal, id string) (*models.User, error) {
	return s.setActive(p, id, false)
}

func (s *userService) setActive(p Principal, id string, active bool) (*models.User, error) {
	if err := authorizeOwner(p, id); err != nil {
		return nil, err
	}

	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	if user.Active == active {
		if active {
			return nil, apperrors.ErrAlreadyActive
		}
		return nil, apperrors.ErrAlreadyInactive
	}

	user.Active = active
	if err := s.db.Model(user).Update("active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}

func (s *userService) findUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
