package typecache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

var fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cmis_type_fetches_total",
	Help: "Type definitions loaded on cache miss, by source and result.",
}, []string{"source", "result"})

// Fetcher loads the wire JSON of a type definition from the server.
type Fetcher interface {
	FetchTypeDefinition(ctx context.Context, repositoryID, typeID string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, repositoryID, typeID string) ([]byte, error)

func (f FetcherFunc) FetchTypeDefinition(ctx context.Context, repositoryID, typeID string) ([]byte, error) {
	return f(ctx, repositoryID, typeID)
}

// Resolver returns type definitions, loading and caching them on demand.
// Only definitions that exist are cached.
type Resolver struct {
	cache   Cache
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore adds a persistent tier between the cache and the server.
func WithStore(store Store) Option {
	return func(r *Resolver) { r.store = store }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver. A nil cache gets a default LRU.
func NewResolver(cache Cache, fetcher Fetcher, opts ...Option) *Resolver {
	if cache == nil {
		cache = NewLRUCache(500, 0)
	}
	r := &Resolver{cache: cache, fetcher: fetcher, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(slog.String("component", "type_resolver"))
	return r
}

// Get returns the definition of typeID in repositoryID.
func (r *Resolver) Get(ctx context.Context, repositoryID, typeID string) (*cmis.TypeDefinition, error) {
	if def, ok := r.cache.Get(repositoryID, typeID); ok {
		return def, nil
	}

	if def := r.loadStored(ctx, repositoryID, typeID); def != nil {
		r.cache.Put(repositoryID, def)
		return def, nil
	}

	raw, err := r.fetcher.FetchTypeDefinition(ctx, repositoryID, typeID)
	if err != nil {
		if errors.Is(err, cmis.ErrObjectNotFound) {
			fetchesTotal.WithLabelValues("server", "not_found").Inc()
			return nil, cmis.WrapError(cmis.ErrTypeNotFound, typeID, err)
		}
		fetchesTotal.WithLabelValues("server", "error").Inc()
		return nil, err
	}

	def, err := parseDefinition(raw)
	if err != nil {
		fetchesTotal.WithLabelValues("server", "error").Inc()
		return nil, err
	}
	if def == nil {
		fetchesTotal.WithLabelValues("server", "not_found").Inc()
		return nil, cmis.Errorf(cmis.ErrTypeNotFound, "type %q", typeID)
	}
	if def.ID != typeID {
		fetchesTotal.WithLabelValues("server", "error").Inc()
		return nil, cmis.Errorf(cmis.ErrInvalidResponse, "requested type %q, server returned %q", typeID, def.ID)
	}
	fetchesTotal.WithLabelValues("server", "ok").Inc()

	r.cache.Put(repositoryID, def)
	if r.store != nil {
		if err := r.store.Put(ctx, repositoryID, typeID, raw); err != nil {
			r.logger.Warn("persist type definition failed",
				slog.String("repository", repositoryID),
				slog.String("type", typeID),
				slog.Any("error", err))
		}
	}
	return def, nil
}

// loadStored reads the persistent tier. Store failures fall through to the
// server.
func (r *Resolver) loadStored(ctx context.Context, repositoryID, typeID string) *cmis.TypeDefinition {
	if r.store == nil {
		return nil
	}
	raw, err := r.store.Get(ctx, repositoryID, typeID)
	if err != nil {
		r.logger.Warn("read stored type definition failed",
			slog.String("repository", repositoryID),
			slog.String("type", typeID),
			slog.Any("error", err))
		return nil
	}
	if raw == nil {
		return nil
	}
	def, err := parseDefinition(raw)
	if err != nil || def == nil || def.ID != typeID {
		r.logger.Debug("ignoring unreadable stored type definition",
			slog.String("type", typeID), slog.Any("error", err))
		return nil
	}
	fetchesTotal.WithLabelValues("store", "ok").Inc()
	return def
}

func parseDefinition(raw []byte) (*cmis.TypeDefinition, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	v, err := convert.Parse(raw)
	if err != nil {
		return nil, err
	}
	return convert.ConvertTypeDefinition(v)
}

// Put caches a definition obtained elsewhere, for example from a type
// listing.
func (r *Resolver) Put(repositoryID string, def *cmis.TypeDefinition) {
	r.cache.Put(repositoryID, def)
}

// Invalidate forgets every definition of a repository.
func (r *Resolver) Invalidate(ctx context.Context, repositoryID string) error {
	r.cache.RemoveRepository(repositoryID)
	if r.store != nil {
		return r.store.DeleteRepository(ctx, repositoryID)
	}
	return nil
}

// ForRepository binds the resolver to one repository for use by the
// converters.
func (r *Resolver) ForRepository(ctx context.Context, repositoryID string) convert.TypeResolver {
	return convert.TypeResolverFunc(func(typeID string) (*cmis.TypeDefinition, error) {
		return r.Get(ctx, repositoryID, typeID)
	})
}
