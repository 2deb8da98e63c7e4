package permission

import (
	"context"
)

type PermissionService interface {
	ListPermissions(ctx context.Context, includeInactive bool) ([]Permission, error)
	ListByCategory(ctx context.Context) (map[string][]Permission, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type PermissionServiceImpl struct {
	repo PermissionRepository
}

func NewPermissionService(repo PermissionRepository) PermissionService {
	return &PermissionServiceImpl{repo: repo}
}

func (s *PermissionServiceImpl) ListPermissions(ctx context.Context, includeInactive bool) ([]Permission, error) {
	if includeInactive {
		return s.repo.List(ctx)
	}
	return s.repo.ListActive(ctx)
}

func (s *PermissionServiceImpl) ListByCategory(ctx context.Context) (map[string][]Permission, error) {
	perms, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]Permission)
	for _, p := range perms {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped, nil
}

func (s *PermissionServiceImpl) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
