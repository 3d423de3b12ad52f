package browser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nucleus/cmis-core/internal/config"
	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/internal/transport"
	"github.com/nucleus/cmis-core/internal/typecache"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// Binding talks to one browser binding service URL. It is safe for
// concurrent use.
type Binding struct {
	serviceURL string
	succinct   bool

	client *transport.Client
	types  *typecache.Resolver
	store  typecache.Store
	urls   *urlCache
	logger *slog.Logger
}

// Option configures a Binding.
type Option func(*options)

type options struct {
	client *transport.Client
	cache  typecache.Cache
	store  typecache.Store
	logger *slog.Logger
}

// WithClient replaces the transport client built from the session.
func WithClient(c *transport.Client) Option {
	return func(o *options) { o.client = c }
}

// WithTypeCache replaces the in-memory type definition cache.
func WithTypeCache(c typecache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithTypeStore sets the persistent type definition store. It takes
// precedence over the session DSN.
func WithTypeStore(s typecache.Store) Option {
	return func(o *options) { o.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewBinding creates a binding for the session. When the session names a
// type store DSN the Postgres store is opened here and closed by Close.
func NewBinding(session *config.Session, opts ...Option) (*Binding, error) {
	if session == nil {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "session is required")
	}
	if session.BrowserURL == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "browser URL is required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if session.Token != "" {
		if exp, ok := transport.TokenExpiry(session.Token); ok && time.Now().After(exp) {
			o.logger.Warn("bearer token has expired", slog.Time("expired_at", exp))
		}
	}

	if o.client == nil {
		o.client = transport.NewClient(&transport.ClientConfig{
			Auth:       transport.NewAuth(session.User, session.Password, session.Token),
			Timeout:    session.Timeout,
			MaxRetries: session.MaxRetries,
			RateLimit:  session.RateLimit,
			RateBurst:  session.RateBurst,
			Logger:     o.logger,
		})
	}
	if o.cache == nil {
		size := session.TypeCacheSize
		if size <= 0 {
			size = 500
		}
		o.cache = typecache.NewLRUCache(size, session.TypeCacheTTL)
	}
	if o.store == nil && session.TypeStoreDSN != "" {
		store, err := typecache.NewPostgresStore(session.TypeStoreDriver, session.TypeStoreDSN)
		if err != nil {
			return nil, fmt.Errorf("open type store: %w", err)
		}
		o.store = store
	}

	b := &Binding{
		serviceURL: session.BrowserURL,
		succinct:   session.Succinct,
		client:     o.client,
		store:      o.store,
		urls:       newURLCache(),
		logger:     o.logger.With(slog.String("component", "browser_binding")),
	}

	resolverOpts := []typecache.Option{typecache.WithLogger(o.logger)}
	if o.store != nil {
		resolverOpts = append(resolverOpts, typecache.WithStore(o.store))
	}
	b.types = typecache.NewResolver(o.cache, b, resolverOpts...)
	return b, nil
}

// Succinct reports whether the binding asks for succinct properties.
func (b *Binding) Succinct() bool {
	return b.succinct
}

// Close releases the type store.
func (b *Binding) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

// ClearRepositoryCache forgets the URLs and type definitions of a
// repository.
func (b *Binding) ClearRepositoryCache(ctx context.Context, repositoryID string) error {
	b.urls.remove(repositoryID)
	return b.types.Invalidate(ctx, repositoryID)
}

// ClearAllCaches forgets every cached repository URL.
func (b *Binding) ClearAllCaches() {
	b.urls.clear()
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// resolver returns the type resolver used to convert succinct properties of
// a repository.
func (b *Binding) resolver(ctx context.Context, repositoryID string) convert.TypeResolver {
	return b.types.ForRepository(ctx, repositoryID)
}

// read performs a GET and parses the JSON response.
func (b *Binding) read(ctx context.Context, rawURL string, query url.Values) (any, error) {
	resp, err := b.client.Do(ctx, &transport.Request{URL: rawURL, Query: query})
	if err != nil {
		return nil, err
	}
	return convert.Parse(resp.Body)
}

// post sends a form and returns the raw response.
func (b *Binding) post(ctx context.Context, rawURL string, f *form.Form) (*transport.Response, error) {
	contentType, body, err := f.Encode()
	if err != nil {
		return nil, cmis.WrapError(cmis.ErrInvalidArgument, "encode form", err)
	}
	return b.client.PostForm(ctx, rawURL, contentType, body)
}

// postJSON sends a form and parses the JSON response.
func (b *Binding) postJSON(ctx context.Context, rawURL string, f *form.Form) (any, error) {
	resp, err := b.post(ctx, rawURL, f)
	if err != nil {
		return nil, err
	}
	return convert.Parse(resp.Body)
}

// postAndConsume sends a form whose response carries nothing of interest.
func (b *Binding) postAndConsume(ctx context.Context, rawURL string, f *form.Form) error {
	_, err := b.post(ctx, rawURL, f)
	return err
}

func isEmptyBody(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}
