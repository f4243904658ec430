package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/infrastructure/config"
	"github.com/bnema/retouch/internal/infrastructure/transform"
)

// swappableTransformer lets a config reload replace the HTTP client while a
// chat session is open. In-flight requests finish on the old client.
type swappableTransformer struct {
	fs     afero.Fs
	client atomic.Pointer[transform.Client]
}

var _ port.ImageTransformer = (*swappableTransformer)(nil)

func newSwappableTransformer(ctx context.Context, fs afero.Fs, cfg *config.Config) *swappableTransformer {
	s := &swappableTransformer{fs: fs}
	s.Reload(ctx, cfg)
	return s
}

// Reload builds a new client from cfg.
func (s *swappableTransformer) Reload(ctx context.Context, cfg *config.Config) {
	s.client.Store(transform.NewClient(ctx, s.fs, transformOptions(cfg)))
}

func (s *swappableTransformer) Transform(ctx context.Context, req port.TransformRequest) (*port.TransformResult, error) {
	return s.client.Load().Transform(ctx, req)
}

func transformOptions(cfg *config.Config) transform.Options {
	b := cfg.Backend
	return transform.Options{
		BaseURL:            b.URL,
		APIKey:             b.APIKey,
		Timeout:            time.Duration(b.TimeoutSeconds) * time.Second,
		RequestsPerMinute:  b.RequestsPerMinute,
		Burst:              b.Burst,
		BreakerMaxFailures: uint32(max(b.BreakerMaxFailures, 0)),
		BreakerTimeout:     time.Duration(b.BreakerTimeoutSeconds) * time.Second,
		OutputDir:          cfg.Output.Dir,
	}
}
