package repository

import (
	"context"

	"github.com/bnema/retouch/internal/domain/entity"
)

// PlatformPermissionRepository persists authorization statuses for the local
// authorization backend, which stands in for an OS permission store.
type PlatformPermissionRepository interface {
	// Get retrieves the stored status for a resource.
	// Returns nil if no record exists (treat as not determined).
	Get(ctx context.Context, resource entity.Resource) (*entity.PermissionRecord, error)

	// Set saves or updates a permission record.
	Set(ctx context.Context, record *entity.PermissionRecord) error

	// Delete removes the record for a resource, resetting it to not determined.
	Delete(ctx context.Context, resource entity.Resource) error

	// GetAll retrieves every stored record.
	GetAll(ctx context.Context) ([]*entity.PermissionRecord, error)
}
