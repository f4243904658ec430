package port

import (
	"context"

	"github.com/bnema/retouch/internal/domain/entity"
)

// Authorizer is the OS permission layer. Implementations translate platform
// values into entity.AuthorizationStatus at this boundary; raw platform
// strings never leave the adapter.
type Authorizer interface {
	// AuthorizationStatus returns the current status without prompting.
	// Returns entity.ErrCapabilityUnavailable when the platform has no
	// permission API for the resource.
	AuthorizationStatus(ctx context.Context, resource entity.Resource) (entity.AuthorizationStatus, error)

	// RequestAuthorization asks the OS for access. The callback is invoked
	// exactly once, possibly from another goroutine, with the resulting
	// status. If the status is already resolved the callback receives it
	// without a prompt being shown.
	RequestAuthorization(ctx context.Context, resource entity.Resource, callback func(entity.AuthorizationStatus))

	// OpenAppSettings asks the OS to show its settings surface for this app.
	OpenAppSettings(ctx context.Context) error
}
