// Package port defines interfaces for infrastructure adapters.
package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider hands out the SQLite connection shared by the prompt
// history and the local permission store. The connection is opened and
// migrated on the first DB call.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
	// IsInitialized reports whether DB has opened the connection.
	IsInitialized() bool
}
