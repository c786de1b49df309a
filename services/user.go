package services

import (
	"context"
	"errors"

	"github.com/wahid1099/CourseMaster-Backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrBadCredentials is returned on a failed login attempt.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserService owns user accounts.
type UserService struct {
	db        *gorm.DB
	saltRound int
}

func NewUserService(db *gorm.DB, saltRound int) *UserService {
	return &UserService{db: db, saltRound: saltRound}
}

// Register creates a user with a hashed password.
func (s *UserService) Register(ctx context.Context, user models.User) (*models.User, error) {
	db := s.db.WithContext(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.saltRound)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = "USER"
	}

	if err := db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks email/password and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

// GetActive returns a non-deleted user by id.
func (s *UserService) GetActive(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
