// Package portal talks to the XDG desktop portal over the D-Bus session bus.
package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/retouch/internal/logging"
)

const (
	portalDest = "org.freedesktop.portal.Desktop"
	portalPath = "/org/freedesktop/portal/desktop"

	storeDest  = "org.freedesktop.impl.portal.PermissionStore"
	storePath  = "/org/freedesktop/impl/portal/PermissionStore"
	storeIface = "org.freedesktop.impl.portal.PermissionStore"

	cameraIface       = "org.freedesktop.portal.Camera"
	notificationIface = "org.freedesktop.portal.Notification"
	requestIface      = "org.freedesktop.portal.Request"
	propertiesGet     = "org.freedesktop.DBus.Properties.Get"

	fdoNotifyDest = "org.freedesktop.Notifications"
	fdoNotifyPath = "/org/freedesktop/Notifications"

	errNameNotFound = "org.freedesktop.portal.Error.NotFound"
)

// errNoEntry is returned by Lookup when the permission store has no entry.
var errNoEntry = errors.New("no permission store entry")

// portalAPI is the subset of portal calls the adapters need.
type portalAPI interface {
	// Lookup returns the app id to permissions map of a store entry.
	Lookup(ctx context.Context, table, id string) (map[string][]string, error)
	// SetPermission stores permissions for app under table/id.
	SetPermission(ctx context.Context, table, id, app string, permissions []string) error
	CameraPresent(ctx context.Context) (bool, error)
	// AccessCamera shows the camera consent dialog and returns the
	// Request.Response code.
	AccessCamera(ctx context.Context) (uint32, error)
	HasInterface(ctx context.Context, iface string) bool
	AddNotification(ctx context.Context, id string, notification map[string]dbus.Variant) error
	// NotifyFallback posts through org.freedesktop.Notifications.
	NotifyFallback(ctx context.Context, appName, title, body string, urgency byte) error
}

type dbusPortal struct {
	conn   *dbus.Conn
	tokens atomic.Uint64
}

// connect opens the session bus and checks that the portal answers.
func connect(ctx context.Context) (*dbusPortal, error) {
	log := logging.FromContext(ctx)

	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		log.Debug().Err(err).Msg("portal: cannot connect to D-Bus session bus")
		return nil, fmt.Errorf("session bus: %w", err)
	}

	p := &dbusPortal{conn: conn}
	var ping dbus.Variant
	err = conn.Object(portalDest, portalPath).
		CallWithContext(ctx, propertiesGet, 0, "org.freedesktop.portal.Settings", "version").
		Store(&ping)
	if err != nil {
		_ = conn.Close()
		log.Debug().Err(err).Msg("portal: desktop portal not available")
		return nil, fmt.Errorf("desktop portal: %w", err)
	}
	return p, nil
}

func (p *dbusPortal) Close() error {
	return p.conn.Close()
}

func (p *dbusPortal) Lookup(ctx context.Context, table, id string) (map[string][]string, error) {
	var permissions map[string][]string
	var data dbus.Variant
	err := p.conn.Object(storeDest, storePath).
		CallWithContext(ctx, storeIface+".Lookup", 0, table, id).
		Store(&permissions, &data)
	if err != nil {
		var dbusErr dbus.Error
		if errors.As(err, &dbusErr) && dbusErr.Name == errNameNotFound {
			return nil, errNoEntry
		}
		return nil, fmt.Errorf("permission store lookup %s/%s: %w", table, id, err)
	}
	return permissions, nil
}

func (p *dbusPortal) SetPermission(ctx context.Context, table, id, app string, permissions []string) error {
	return p.conn.Object(storeDest, storePath).
		CallWithContext(ctx, storeIface+".SetPermission", 0, table, true, id, app, permissions).
		Err
}

func (p *dbusPortal) CameraPresent(ctx context.Context) (bool, error) {
	var v dbus.Variant
	err := p.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, propertiesGet, 0, cameraIface, "IsCameraPresent").
		Store(&v)
	if err != nil {
		return false, err
	}
	present, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected IsCameraPresent type %s", v.Signature())
	}
	return present, nil
}

func (p *dbusPortal) HasInterface(ctx context.Context, iface string) bool {
	var v dbus.Variant
	return p.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, propertiesGet, 0, iface, "version").
		Store(&v) == nil
}

// requestPath predicts the Request object path so the Response match can be
// installed before the call that emits it.
func (p *dbusPortal) requestPath(token string) dbus.ObjectPath {
	sender := strings.ReplaceAll(strings.TrimPrefix(p.conn.Names()[0], ":"), ".", "_")
	return dbus.ObjectPath(portalPath + "/request/" + sender + "/" + token)
}

func (p *dbusPortal) AccessCamera(ctx context.Context) (uint32, error) {
	log := logging.FromContext(ctx)

	token := fmt.Sprintf("retouch%d", p.tokens.Add(1))
	handle := p.requestPath(token)

	matchRule := fmt.Sprintf(
		"type='signal',interface='%s',member='Response',path='%s'",
		requestIface, handle,
	)
	if err := p.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, matchRule).Err; err != nil {
		return 0, fmt.Errorf("add signal match: %w", err)
	}
	signals := make(chan *dbus.Signal, 1)
	p.conn.Signal(signals)
	defer func() {
		p.conn.RemoveSignal(signals)
		_ = p.conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, matchRule).Err
	}()

	options := map[string]dbus.Variant{"handle_token": dbus.MakeVariant(token)}
	var got dbus.ObjectPath
	if err := p.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, cameraIface+".AccessCamera", 0, options).
		Store(&got); err != nil {
		return 0, fmt.Errorf("access camera: %w", err)
	}
	if got != handle {
		// Old portals ignore handle_token; follow the returned path instead.
		log.Debug().Str("expected", string(handle)).Str("got", string(got)).Msg("portal: request handle differs")
		handle = got
	}

	for {
		select {
		case sig := <-signals:
			if sig == nil {
				return 0, errors.New("session bus closed while waiting for camera response")
			}
			if sig.Path != handle || sig.Name != requestIface+".Response" || len(sig.Body) == 0 {
				continue
			}
			code, ok := sig.Body[0].(uint32)
			if !ok {
				return 0, fmt.Errorf("unexpected response body %v", sig.Body)
			}
			return code, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func (p *dbusPortal) AddNotification(ctx context.Context, id string, notification map[string]dbus.Variant) error {
	return p.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, notificationIface+".AddNotification", 0, id, notification).
		Err
}

func (p *dbusPortal) NotifyFallback(ctx context.Context, appName, title, body string, urgency byte) error {
	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
	return p.conn.Object(fdoNotifyDest, fdoNotifyPath).
		CallWithContext(ctx, fdoNotifyDest+".Notify", 0,
			appName, uint32(0), "", title, body, []string{}, hints, int32(-1)).
		Err
}
