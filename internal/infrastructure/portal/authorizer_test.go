package portal

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

const testAppID = "io.github.bnema.retouch"

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func awaitStatus(t *testing.T, a *Authorizer, r entity.Resource) entity.AuthorizationStatus {
	t.Helper()
	ch := make(chan entity.AuthorizationStatus, 1)
	a.RequestAuthorization(testCtx(), r, func(s entity.AuthorizationStatus) { ch <- s })
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
		return ""
	}
}

func TestStatusFromStore(t *testing.T) {
	tests := map[string]entity.AuthorizationStatus{
		"yes":   entity.StatusAuthorized,
		"no":    entity.StatusDenied,
		"ask":   entity.StatusNotDetermined,
		"maybe": entity.StatusRestricted,
		"":      entity.StatusRestricted,
	}
	for raw, want := range tests {
		assert.Equal(t, want, statusFromStore(raw), raw)
	}
}

func TestStatusFromResponse(t *testing.T) {
	assert.Equal(t, entity.StatusAuthorized, statusFromResponse(0))
	assert.Equal(t, entity.StatusNotDetermined, statusFromResponse(1))
	assert.Equal(t, entity.StatusDenied, statusFromResponse(2))
}

func TestAuthorizer_CameraStatus(t *testing.T) {
	ctx := testCtx()

	t.Run("missing entry is not determined", func(t *testing.T) {
		fp := newFakePortal()
		fp.cameraPresent = true
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusNotDetermined, s)
	})

	t.Run("host app entry", func(t *testing.T) {
		fp := newFakePortal()
		fp.cameraPresent = true
		fp.entries["devices/camera"] = map[string][]string{"": {"no"}}
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDenied, s)
	})

	t.Run("app id entry wins", func(t *testing.T) {
		fp := newFakePortal()
		fp.cameraPresent = true
		fp.entries["devices/camera"] = map[string][]string{"": {"no"}, testAppID: {"yes"}}
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAuthorized, s)
	})

	t.Run("no camera is restricted", func(t *testing.T) {
		fp := newFakePortal()
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusRestricted, s)
	})

	t.Run("portal failure is capability unavailable", func(t *testing.T) {
		fp := newFakePortal()
		fp.cameraErr = errBus
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		_, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.ErrorIs(t, err, entity.ErrCapabilityUnavailable)
	})

	t.Run("store failure is capability unavailable", func(t *testing.T) {
		fp := newFakePortal()
		fp.cameraPresent = true
		fp.lookupErr = errBus
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		_, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
		require.ErrorIs(t, err, entity.ErrCapabilityUnavailable)
	})
}

func TestAuthorizer_PhotoLibraryStatus(t *testing.T) {
	ctx := testCtx()
	fs := afero.NewMemMapFs()
	a := newAuthorizer(newFakePortal(), testAppID, fs, nil)

	s, err := a.AuthorizationStatus(ctx, entity.ResourcePhotoLibrary)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAuthorized, s)

	require.NoError(t, afero.WriteFile(fs, "/.flatpak-info", []byte("[Application]"), 0o644))
	s, err = a.AuthorizationStatus(ctx, entity.ResourcePhotoLibrary)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusLimited, s)

	assert.Equal(t, entity.StatusLimited, awaitStatus(t, a, entity.ResourcePhotoLibrary),
		"a sandboxed library cannot be upgraded")
}

func TestAuthorizer_RequestCamera(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		err  error
		want entity.AuthorizationStatus
	}{
		{"granted", 0, nil, entity.StatusAuthorized},
		{"cancelled", 1, nil, entity.StatusNotDetermined},
		{"refused", 2, nil, entity.StatusDenied},
		{"bus failure", 0, errBus, entity.StatusRestricted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := newFakePortal()
			fp.cameraPresent = true
			fp.accessCode = tt.code
			fp.accessErr = tt.err
			a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

			assert.Equal(t, tt.want, awaitStatus(t, a, entity.ResourceCamera))
			assert.Equal(t, 1, fp.accessCalls)
		})
	}
}

func TestAuthorizer_RequestResolvedDoesNotPrompt(t *testing.T) {
	fp := newFakePortal()
	fp.cameraPresent = true
	fp.entries["devices/camera"] = map[string][]string{"": {"yes"}}
	a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

	assert.Equal(t, entity.StatusAuthorized, awaitStatus(t, a, entity.ResourceCamera))
	assert.Zero(t, fp.accessCalls)
}

func TestAuthorizer_Notifications(t *testing.T) {
	ctx := testCtx()

	t.Run("no portal is restricted", func(t *testing.T) {
		a := newAuthorizer(newFakePortal(), testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceNotifications)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusRestricted, s)
	})

	t.Run("request records the grant", func(t *testing.T) {
		fp := newFakePortal()
		fp.interfaces[notificationIface] = true
		a := newAuthorizer(fp, testAppID, afero.NewMemMapFs(), nil)

		s, err := a.AuthorizationStatus(ctx, entity.ResourceNotifications)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusNotDetermined, s)

		assert.Equal(t, entity.StatusAuthorized, awaitStatus(t, a, entity.ResourceNotifications))

		s, err = a.AuthorizationStatus(ctx, entity.ResourceNotifications)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAuthorized, s)
	})
}

func TestAuthorizer_OpenAppSettings(t *testing.T) {
	ctx := testCtx()

	a := newAuthorizer(newFakePortal(), testAppID, afero.NewMemMapFs(), nil)
	require.ErrorIs(t, a.OpenAppSettings(ctx), entity.ErrCapabilityUnavailable)

	called := false
	a = newAuthorizer(newFakePortal(), testAppID, afero.NewMemMapFs(), func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, a.OpenAppSettings(ctx))
	assert.True(t, called)
}

func TestNotifier_FallsBack(t *testing.T) {
	ctx := testCtx()

	fp := newFakePortal()
	n := newNotifier(fp, "retouch")
	require.NoError(t, n.Notify(ctx, "Image ready", "a cat", port.NotificationSuccess))
	require.Len(t, fp.notifications, 1)
	assert.Equal(t, "normal", fp.notifications[0]["priority"].Value())

	fp.addErr = errBus
	require.NoError(t, n.Notify(ctx, "Transformation failed", "boom", port.NotificationError))
	assert.Equal(t, []string{"Transformation failed"}, fp.fallbacks)

	fp.fallbackErr = errBus
	require.Error(t, n.Notify(ctx, "x", "y", port.NotificationInfo))
}
