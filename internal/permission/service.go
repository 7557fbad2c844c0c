package permission

import (
	"fmt"
	"log/slog"

	errors "github.com/aditirto/identity-service/internal"
	"github.com/aditirto/identity-service/internal/core/rbac"
)

type Repository interface {
	GetAll(filter Filter) ([]*Permission, error)
	UpdateStatus(filter Filter, isActive bool) ([]*Permission, error)
	SeedMatrix(rows []*Permission) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(filter Filter) ([]*Permission, error) {
	perms, err := s.repo.GetAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

// UpdateStatus toggles is_active on every row matching the filter.
func (s *Service) UpdateStatus(filter Filter, isActive bool) ([]*Permission, error) {
	perms, err := s.repo.UpdateStatus(filter, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}
	if len(perms) == 0 {
		return nil, errors.ErrPermissionNotFound
	}
	return perms, nil
}

// Seed installs the default matrix as an idempotent per-row upsert keyed by
// the composite primary key. Existing rows are left untouched, so re-running
// the seed never duplicates entries or reactivates rows an administrator
// disabled.
func (s *Service) Seed() error {
	var rows []*Permission
	for _, entry := range rbac.DefaultMatrix {
		for _, action := range entry.Actions {
			rows = append(rows, &Permission{
				Role:     entry.Role,
				Action:   action,
				Resource: entry.Resource,
				IsActive: true,
			})
		}
	}

	inserted, err := s.repo.SeedMatrix(rows)
	if err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	s.logger.Info("permission matrix seeded", "inserted", inserted, "matrix_size", len(rows))
	return nil
}
