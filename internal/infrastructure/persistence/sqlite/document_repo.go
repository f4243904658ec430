package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/logging"
)

const (
	selectDocument = `SELECT data FROM documents WHERE key = ?`
	upsertDocument = `INSERT INTO documents (key, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
)

type documentRepo struct {
	db *sql.DB
}

// NewDocumentRepository creates a SQLite-backed document repository.
// A single upsert replaces the document, so readers see either the old or the
// new bytes.
func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Read(ctx context.Context, key string) ([]byte, bool, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Msg("reading document")

	var data []byte
	err := r.db.QueryRowContext(ctx, selectDocument, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read document %s: %w", key, err)
	}
	return data, true, nil
}

func (r *documentRepo) Write(ctx context.Context, key string, data []byte) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("writing document")

	if data == nil {
		data = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, upsertDocument, key, data, time.Now().Unix()); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	return nil
}
