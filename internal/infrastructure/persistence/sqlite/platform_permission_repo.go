package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/logging"
)

const (
	selectPlatformPermission = `SELECT resource, status, updated_at FROM platform_permissions WHERE resource = ?`
	upsertPlatformPermission = `INSERT INTO platform_permissions (resource, status, updated_at) VALUES (?, ?, ?)
ON CONFLICT(resource) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`
	deletePlatformPermission = `DELETE FROM platform_permissions WHERE resource = ?`
	listPlatformPermissions  = `SELECT resource, status, updated_at FROM platform_permissions ORDER BY resource`
)

type platformPermissionRepo struct {
	db *sql.DB
}

// NewPlatformPermissionRepository creates a SQLite-backed store for the local
// authorization backend.
func NewPlatformPermissionRepository(db *sql.DB) repository.PlatformPermissionRepository {
	return &platformPermissionRepo{db: db}
}

func (r *platformPermissionRepo) Get(ctx context.Context, resource entity.Resource) (*entity.PermissionRecord, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("resource", string(resource)).Msg("getting platform permission")

	record, err := scanPlatformPermission(r.db.QueryRowContext(ctx, selectPlatformPermission, string(resource)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (r *platformPermissionRepo) Set(ctx context.Context, record *entity.PermissionRecord) error {
	log := logging.FromContext(ctx)

	if record == nil {
		log.Error().Msg("cannot set nil permission record")
		return errors.New("cannot set nil permission record")
	}

	updatedAt := record.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().Unix()
	}

	log.Debug().
		Str("resource", string(record.Resource)).
		Str("status", string(record.Status)).
		Msg("setting platform permission")

	_, err := r.db.ExecContext(ctx, upsertPlatformPermission,
		string(record.Resource), string(record.Status), updatedAt)
	return err
}

func (r *platformPermissionRepo) Delete(ctx context.Context, resource entity.Resource) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("resource", string(resource)).Msg("deleting platform permission")

	_, err := r.db.ExecContext(ctx, deletePlatformPermission, string(resource))
	return err
}

func (r *platformPermissionRepo) GetAll(ctx context.Context) ([]*entity.PermissionRecord, error) {
	rows, err := r.db.QueryContext(ctx, listPlatformPermissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.PermissionRecord
	for rows.Next() {
		record, err := scanPlatformPermission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlatformPermission(row rowScanner) (*entity.PermissionRecord, error) {
	var resource, status string
	var updatedAt int64
	if err := row.Scan(&resource, &status, &updatedAt); err != nil {
		return nil, err
	}
	return &entity.PermissionRecord{
		Resource:  entity.Resource(resource),
		Status:    entity.ParseAuthorizationStatus(status),
		UpdatedAt: updatedAt,
	}, nil
}
