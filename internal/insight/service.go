package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/Sablekanishka11/mbti-mirror/internal/llm"
)

// ErrUnavailable is returned when no text-generation provider is configured.
var ErrUnavailable = errors.New("insights are unavailable: no LLM provider configured")

// Service caches generated commentary in memory and collapses concurrent
// requests for the same exemplar into one provider call. Failures are not
// cached, so a later request tries again.
type Service struct {
	gen     *Generator
	cache   *lru.Cache[string, string]
	group   singleflight.Group
	timeout time.Duration
	logger  *slog.Logger
}

// Options configures a Service.
type Options struct {
	CacheSize int           // default 256
	Timeout   time.Duration // per-request timeout; 0 means none
	Config    Config
	Logger    *slog.Logger
}

// NewService creates a Service. A nil provider yields a Service whose
// Explain always returns ErrUnavailable.
func NewService(provider llm.Provider, opts Options) (*Service, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.Config == (Config{}) {
		opts.Config = DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	cache, err := lru.New[string, string](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create insight cache: %w", err)
	}

	s := &Service{
		cache:   cache,
		timeout: opts.Timeout,
		logger:  opts.Logger.With("component", "insight"),
	}
	if provider != nil {
		s.gen = NewGenerator(provider, opts.Config)
	}
	return s, nil
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s.gen != nil
}

// Explain returns commentary for the exemplar, from cache when possible.
func (s *Service) Explain(ctx context.Context, req Request) (string, error) {
	if s.gen == nil {
		return "", ErrUnavailable
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	key := req.key()
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	// The shared call ignores caller cancellation. Each caller waits on
	// its own ctx.
	ch := s.group.DoChan(key, func() (any, error) {
		if text, ok := s.cache.Get(key); ok {
			return text, nil
		}
		callCtx := context.WithoutCancel(ctx)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, s.timeout)
			defer cancel()
		}
		text, err := s.gen.Generate(callCtx, req)
		if err != nil {
			return "", err
		}
		s.cache.Add(key, text)
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Warn("insight generation failed",
				"type_code", req.TypeCode, "name", req.Name, "shared", res.Shared, "error", res.Err)
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Cached returns commentary already in the cache without generating.
func (s *Service) Cached(req Request) (string, bool) {
	return s.cache.Get(req.key())
}
