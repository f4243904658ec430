package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/godbus/dbus/v5"
)

type fakePortal struct {
	mu sync.Mutex

	entries       map[string]map[string][]string // table/id -> permissions
	lookupErr     error
	cameraPresent bool
	cameraErr     error
	accessCode    uint32
	accessErr     error
	interfaces    map[string]bool
	addErr        error
	fallbackErr   error

	set           []string
	notifications []map[string]dbus.Variant
	fallbacks     []string
	accessCalls   int
}

func newFakePortal() *fakePortal {
	return &fakePortal{
		entries:    map[string]map[string][]string{},
		interfaces: map[string]bool{},
	}
}

func (f *fakePortal) Lookup(_ context.Context, table, id string) (map[string][]string, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	perms, ok := f.entries[table+"/"+id]
	if !ok {
		return nil, errNoEntry
	}
	return perms, nil
}

func (f *fakePortal) SetPermission(_ context.Context, table, id, app string, permissions []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = append(f.set, table+"/"+id+"/"+app)
	if f.entries[table+"/"+id] == nil {
		f.entries[table+"/"+id] = map[string][]string{}
	}
	f.entries[table+"/"+id][app] = permissions
	return nil
}

func (f *fakePortal) CameraPresent(context.Context) (bool, error) {
	return f.cameraPresent, f.cameraErr
}

func (f *fakePortal) AccessCamera(context.Context) (uint32, error) {
	f.mu.Lock()
	f.accessCalls++
	f.mu.Unlock()
	return f.accessCode, f.accessErr
}

func (f *fakePortal) HasInterface(_ context.Context, iface string) bool {
	return f.interfaces[iface]
}

func (f *fakePortal) AddNotification(_ context.Context, _ string, n map[string]dbus.Variant) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakePortal) NotifyFallback(_ context.Context, _, title, _ string, _ byte) error {
	if f.fallbackErr != nil {
		return f.fallbackErr
	}
	f.fallbacks = append(f.fallbacks, title)
	return nil
}

var errBus = errors.New("bus gone")
