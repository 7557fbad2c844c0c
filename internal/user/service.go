package user

import (
	"fmt"

	errors "github.com/aditirto/identity-service/internal"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	UpdateProfile(userID int64, firstName, lastName *string) (*User, error)
	Deactivate(userID int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if u == nil {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies a partial update: omitted fields keep their current
// value. A payload with nothing set skips the write and returns the profile
// as is.
func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error) {
	if dto.IsEmpty() {
		return s.GetByID(userID)
	}

	u, err := s.repo.UpdateProfile(userID, dto.FirstName, dto.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if u == nil {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

// Deactivate soft-deletes the account. The row stays in place with
// is_active=false, which also invalidates any outstanding tokens at the
// next authorization check.
func (s *Service) Deactivate(userID int64) error {
	if err := s.repo.Deactivate(userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}
