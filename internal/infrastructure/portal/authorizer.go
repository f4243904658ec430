package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

const (
	flatpakInfoPath = "/.flatpak-info"

	tableDevices       = "devices"
	idCamera           = "camera"
	tableNotifications = "notifications"

	// Request.Response codes.
	responseSuccess   = 0
	responseCancelled = 1
)

var _ port.Authorizer = (*Authorizer)(nil)

// Authorizer implements port.Authorizer on top of the XDG desktop portal.
// Raw permission store strings are translated here and never leave the
// package.
type Authorizer struct {
	api      portalAPI
	appID    string
	fs       afero.Fs
	settings func(ctx context.Context) error
}

// NewAuthorizer connects to the session bus. It returns an error wrapping
// entity.ErrCapabilityUnavailable when no portal answers.
// settings opens the desktop's permission settings and may be nil.
func NewAuthorizer(ctx context.Context, appID string, fs afero.Fs, settings func(context.Context) error) (*Authorizer, error) {
	api, err := connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrCapabilityUnavailable, err)
	}
	return newAuthorizer(api, appID, fs, settings), nil
}

func newAuthorizer(api portalAPI, appID string, fs afero.Fs, settings func(context.Context) error) *Authorizer {
	return &Authorizer{api: api, appID: appID, fs: fs, settings: settings}
}

// Close releases the bus connection.
func (a *Authorizer) Close() error {
	if c, ok := a.api.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (a *Authorizer) AuthorizationStatus(ctx context.Context, resource entity.Resource) (entity.AuthorizationStatus, error) {
	switch resource {
	case entity.ResourceCamera:
		return a.cameraStatus(ctx)
	case entity.ResourcePhotoLibrary:
		return a.photoLibraryStatus(), nil
	case entity.ResourceNotifications:
		return a.notificationStatus(ctx)
	default:
		return entity.StatusRestricted, fmt.Errorf("%w: %s", entity.ErrCapabilityUnavailable, resource)
	}
}

func (a *Authorizer) RequestAuthorization(
	ctx context.Context,
	resource entity.Resource,
	callback func(entity.AuthorizationStatus),
) {
	ctx = logging.WithResource(ctx, string(resource))
	log := logging.FromContext(ctx)

	current, err := a.AuthorizationStatus(ctx, resource)
	if err != nil {
		log.Debug().Err(err).Msg("portal: status unavailable before request")
		callback(entity.StatusRestricted)
		return
	}
	if current.IsResolved() {
		callback(current)
		return
	}

	go func() {
		var status entity.AuthorizationStatus
		switch resource {
		case entity.ResourceCamera:
			status = a.requestCamera(ctx)
		case entity.ResourceNotifications:
			status = a.requestNotifications(ctx)
		default:
			// The document portal grants files one at a time; there is no
			// library-wide upgrade to ask for.
			status = current
		}
		log.Info().Str("status", string(status)).Msg("portal: authorization request finished")
		callback(status)
	}()
}

func (a *Authorizer) OpenAppSettings(ctx context.Context) error {
	if a.settings == nil {
		return entity.ErrCapabilityUnavailable
	}
	return a.settings(ctx)
}

func (a *Authorizer) cameraStatus(ctx context.Context) (entity.AuthorizationStatus, error) {
	present, err := a.api.CameraPresent(ctx)
	if err != nil {
		return entity.StatusRestricted, fmt.Errorf("%w: camera portal: %w", entity.ErrCapabilityUnavailable, err)
	}
	if !present {
		return entity.StatusRestricted, nil
	}
	return a.lookupStatus(ctx, tableDevices, idCamera)
}

func (a *Authorizer) photoLibraryStatus() entity.AuthorizationStatus {
	if ok, _ := afero.Exists(a.fs, flatpakInfoPath); ok {
		return entity.StatusLimited
	}
	return entity.StatusAuthorized
}

func (a *Authorizer) notificationStatus(ctx context.Context) (entity.AuthorizationStatus, error) {
	if !a.api.HasInterface(ctx, notificationIface) {
		return entity.StatusRestricted, nil
	}
	return a.lookupStatus(ctx, tableNotifications, a.appID)
}

func (a *Authorizer) lookupStatus(ctx context.Context, table, id string) (entity.AuthorizationStatus, error) {
	permissions, err := a.api.Lookup(ctx, table, id)
	if errors.Is(err, errNoEntry) {
		return entity.StatusNotDetermined, nil
	}
	if err != nil {
		return entity.StatusRestricted, fmt.Errorf("%w: %w", entity.ErrCapabilityUnavailable, err)
	}

	values, ok := permissions[a.appID]
	if !ok {
		// Host apps are stored under the empty app id.
		values, ok = permissions[""]
	}
	if !ok || len(values) == 0 {
		return entity.StatusNotDetermined, nil
	}
	return statusFromStore(values[0]), nil
}

func (a *Authorizer) requestCamera(ctx context.Context) entity.AuthorizationStatus {
	code, err := a.api.AccessCamera(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("portal: camera access request failed")
		return entity.StatusRestricted
	}
	return statusFromResponse(code)
}

func (a *Authorizer) requestNotifications(ctx context.Context) entity.AuthorizationStatus {
	if !a.api.HasInterface(ctx, notificationIface) {
		return entity.StatusRestricted
	}
	if err := a.api.SetPermission(ctx, tableNotifications, a.appID, a.appID, []string{"yes"}); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("portal: could not record notification grant")
	}
	return entity.StatusAuthorized
}

// statusFromStore maps a permission store value.
func statusFromStore(raw string) entity.AuthorizationStatus {
	switch raw {
	case "yes":
		return entity.StatusAuthorized
	case "no":
		return entity.StatusDenied
	case "ask":
		return entity.StatusNotDetermined
	default:
		return entity.StatusRestricted
	}
}

// statusFromResponse maps a Request.Response code.
func statusFromResponse(code uint32) entity.AuthorizationStatus {
	switch code {
	case responseSuccess:
		return entity.StatusAuthorized
	case responseCancelled:
		return entity.StatusNotDetermined
	default:
		return entity.StatusDenied
	}
}
