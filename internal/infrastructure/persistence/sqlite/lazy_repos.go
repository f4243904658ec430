// Package sqlite provides SQLite implementations of domain repositories.
//
// The lazy wrappers in this file implement the same repository interfaces as
// their eager counterparts and open the database through a
// port.DatabaseProvider on first use.
package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/domain/repository"
)

type lazyRepo[T any] struct {
	provider port.DatabaseProvider
	build    func(*sql.DB) T
	repo     T
	once     sync.Once
	initErr  error
}

func (l *lazyRepo[T]) get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		db, err := l.provider.DB(ctx)
		if err != nil {
			l.initErr = err
			return
		}
		l.repo = l.build(db)
	})
	return l.repo, l.initErr
}

// LazyDocumentRepository wraps a document repository with lazy database initialization.
type LazyDocumentRepository struct {
	inner lazyRepo[repository.DocumentRepository]
}

// NewLazyDocumentRepository creates a lazy-loading document repository.
func NewLazyDocumentRepository(provider port.DatabaseProvider) repository.DocumentRepository {
	return &LazyDocumentRepository{inner: lazyRepo[repository.DocumentRepository]{
		provider: provider,
		build:    NewDocumentRepository,
	}}
}

func (r *LazyDocumentRepository) Read(ctx context.Context, key string) ([]byte, bool, error) {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return nil, false, err
	}
	return repo.Read(ctx, key)
}

func (r *LazyDocumentRepository) Write(ctx context.Context, key string, data []byte) error {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return err
	}
	return repo.Write(ctx, key, data)
}

// LazyPlatformPermissionRepository wraps a platform permission repository
// with lazy database initialization.
type LazyPlatformPermissionRepository struct {
	inner lazyRepo[repository.PlatformPermissionRepository]
}

// NewLazyPlatformPermissionRepository creates a lazy-loading platform permission repository.
func NewLazyPlatformPermissionRepository(provider port.DatabaseProvider) repository.PlatformPermissionRepository {
	return &LazyPlatformPermissionRepository{inner: lazyRepo[repository.PlatformPermissionRepository]{
		provider: provider,
		build:    NewPlatformPermissionRepository,
	}}
}

func (r *LazyPlatformPermissionRepository) Get(ctx context.Context, resource entity.Resource) (*entity.PermissionRecord, error) {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, resource)
}

func (r *LazyPlatformPermissionRepository) Set(ctx context.Context, record *entity.PermissionRecord) error {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return err
	}
	return repo.Set(ctx, record)
}

func (r *LazyPlatformPermissionRepository) Delete(ctx context.Context, resource entity.Resource) error {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, resource)
}

func (r *LazyPlatformPermissionRepository) GetAll(ctx context.Context) ([]*entity.PermissionRecord, error) {
	repo, err := r.inner.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAll(ctx)
}
