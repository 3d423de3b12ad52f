package browser

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// urlCache maps repository ids to their repository and root folder URLs.
type urlCache struct {
	mu    sync.RWMutex
	repos map[string]string
	roots map[string]string
}

func newURLCache() *urlCache {
	return &urlCache{
		repos: make(map[string]string),
		roots: make(map[string]string),
	}
}

func (c *urlCache) add(repositoryID, repositoryURL, rootURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repos[repositoryID] = repositoryURL
	c.roots[repositoryID] = rootURL
}

func (c *urlCache) remove(repositoryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.repos, repositoryID)
	delete(c.roots, repositoryID)
}

func (c *urlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repos = make(map[string]string)
	c.roots = make(map[string]string)
}

func (c *urlCache) get(repositoryID string) (repositoryURL, rootURL string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	repositoryURL, ok = c.repos[repositoryID]
	rootURL = c.roots[repositoryID]
	return repositoryURL, rootURL, ok
}

// repositories fetches the repository infos and records their URLs. With a
// known repository id its own URL is asked; otherwise the service URL.
func (b *Binding) repositories(ctx context.Context, repositoryID string) ([]*cmis.RepositoryInfo, error) {
	target, query := b.serviceURL, url.Values(nil)
	if repositoryID != "" {
		if repoURL, _, ok := b.urls.get(repositoryID); ok {
			target = repoURL
			query = url.Values{paramSelector: {selectorRepositoryInfo}}
		}
	}

	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	infos, err := convert.ConvertRepositoryInfos(raw)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID == "" || info.RepositoryURL == "" || info.RootFolderURL == "" {
			b.logger.Warn("repository info without URLs", slog.String("repository", info.ID))
			continue
		}
		b.urls.add(info.ID, info.RepositoryURL, info.RootFolderURL)
	}
	return infos, nil
}

// urlsFor returns the URLs of a repository, fetching the repository infos
// once on a miss.
func (b *Binding) urlsFor(ctx context.Context, repositoryID string) (repositoryURL, rootURL string, err error) {
	if repositoryURL, rootURL, ok := b.urls.get(repositoryID); ok {
		return repositoryURL, rootURL, nil
	}

	b.logger.Debug("repository URL cache miss", slog.String("repository", repositoryID))
	if _, err := b.repositories(ctx, repositoryID); err != nil {
		return "", "", err
	}
	if repositoryURL, rootURL, ok := b.urls.get(repositoryID); ok {
		return repositoryURL, rootURL, nil
	}
	return "", "", cmis.Errorf(cmis.ErrObjectNotFound, "unknown repository %s", repositoryID)
}

// repositoryURL returns the repository URL with an optional selector.
func (b *Binding) repositoryURL(ctx context.Context, repositoryID, selector string) (string, url.Values, error) {
	repoURL, _, err := b.urlsFor(ctx, repositoryID)
	if err != nil {
		return "", nil, err
	}
	query := url.Values{}
	if selector != "" {
		query.Set(paramSelector, selector)
	}
	return repoURL, query, nil
}

// objectURL returns the root folder URL addressing objectID.
func (b *Binding) objectURL(ctx context.Context, repositoryID, objectID, selector string) (string, url.Values, error) {
	_, rootURL, err := b.urlsFor(ctx, repositoryID)
	if err != nil {
		return "", nil, err
	}
	query := url.Values{}
	query.Set(paramObjectID, objectID)
	if selector != "" {
		query.Set(paramSelector, selector)
	}
	return rootURL, query, nil
}

// pathURL returns the root folder URL extended by path, each segment
// escaped.
func (b *Binding) pathURL(ctx context.Context, repositoryID, path, selector string) (string, url.Values, error) {
	_, rootURL, err := b.urlsFor(ctx, repositoryID)
	if err != nil {
		return "", nil, err
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, url.PathEscape(s))
		}
	}
	target := strings.TrimSuffix(rootURL, "/")
	if len(segments) > 0 {
		target += "/" + strings.Join(segments, "/")
	}

	query := url.Values{}
	if selector != "" {
		query.Set(paramSelector, selector)
	}
	return target, query, nil
}

// withQuery appends query to rawURL for requests that carry a form body.
func withQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + query.Encode()
}
