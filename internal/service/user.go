package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastopp/fastopp/internal/model"
	"github.com/fastopp/fastopp/internal/repository"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepo.ByID(id)
}

func (s *UserService) All() ([]*model.User, error) {
	return s.userRepo.All()
}

// Create hashes the password and stores a new user.
func (s *UserService) Create(email, password string, isStaff, isSuperuser bool) (*model.User, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      isStaff,
		IsSuperuser:  isSuperuser,
		CreatedAt:    time.Now(),
	}

	err = s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// CreateSuperuser creates an admin account, or reports the existing one
// without touching it. Used by oppctl during initial setup.
func (s *UserService) CreateSuperuser(email, password string) (*model.User, bool, error) {
	existing, err := s.userRepo.ByEmail(email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := s.Create(email, password, true, true)
	if err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (s *UserService) Update(user *model.User) error {
	return s.userRepo.Update(user)
}

func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}
