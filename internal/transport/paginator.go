package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// =============================================================================
// PAGINATION
// =============================================================================

// Paginator handles API pagination.
type Paginator interface {
	// NextPage returns the request for the next page, or nil if done.
	NextPage(ctx context.Context, resp *Response) (*Request, error)
}

// SkipCountPaginator pages with the skipCount/maxItems parameters and stops
// when the server reports hasMoreItems false or returns an empty page.
type SkipCountPaginator struct {
	URL       string
	Query     url.Values
	MaxItems  int
	SkipCount int
	ItemsKey  string // JSON key of the page items (default: "objects")
	fetched   int
}

// NewSkipCountPaginator creates a paginator for rawURL. query holds the
// parameters repeated on every page.
func NewSkipCountPaginator(rawURL string, query url.Values, maxItems int) *SkipCountPaginator {
	if query == nil {
		query = url.Values{}
	}
	return &SkipCountPaginator{
		URL:      rawURL,
		Query:    query,
		MaxItems: maxItems,
		ItemsKey: "objects",
	}
}

// FirstPage returns the request for the current offset.
func (p *SkipCountPaginator) FirstPage() *Request {
	query := url.Values{}
	for k, v := range p.Query {
		query[k] = append([]string(nil), v...)
	}
	query.Set("skipCount", strconv.Itoa(p.SkipCount))
	if p.MaxItems > 0 {
		query.Set("maxItems", strconv.Itoa(p.MaxItems))
	}
	return &Request{
		Method: http.MethodGet,
		URL:    p.URL,
		Query:  query,
	}
}

// NextPage reads hasMoreItems and the page size from resp.
func (p *SkipCountPaginator) NextPage(ctx context.Context, resp *Response) (*Request, error) {
	var page map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, cmis.WrapError(cmis.ErrInvalidResponse, "page", err)
	}

	var items []json.RawMessage
	if raw, ok := page[p.ItemsKey]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, cmis.WrapError(cmis.ErrInvalidResponse, p.ItemsKey, err)
		}
	}
	var hasMore bool
	if raw, ok := page["hasMoreItems"]; ok {
		if err := json.Unmarshal(raw, &hasMore); err != nil {
			return nil, cmis.WrapError(cmis.ErrInvalidResponse, "hasMoreItems", err)
		}
	}

	if !hasMore || len(items) == 0 {
		return nil, nil
	}
	p.fetched += len(items)
	p.SkipCount += len(items)
	return p.FirstPage(), nil
}

// Fetched returns the number of items seen so far.
func (p *SkipCountPaginator) Fetched() int {
	return p.fetched
}

// =============================================================================
// PAGINATED ITERATOR
// =============================================================================

// PaginatedIterator fetches pages lazily and yields their items.
type PaginatedIterator[T any] struct {
	ctx          context.Context
	client       *Client
	paginator    Paginator
	parseResults func(resp *Response) ([]T, error)

	current     []T
	currentIdx  int
	nextRequest *Request
	done        bool
	err         error
}

// NewPaginatedIterator creates a paginated iterator.
func NewPaginatedIterator[T any](
	ctx context.Context,
	client *Client,
	firstRequest *Request,
	paginator Paginator,
	parseResults func(resp *Response) ([]T, error),
) *PaginatedIterator[T] {
	return &PaginatedIterator[T]{
		ctx:          ctx,
		client:       client,
		paginator:    paginator,
		parseResults: parseResults,
		nextRequest:  firstRequest,
	}
}

// Next advances to the next item.
func (it *PaginatedIterator[T]) Next() bool {
	for it.currentIdx >= len(it.current) {
		if it.done || it.nextRequest == nil || it.err != nil {
			return false
		}
		if !it.fetch() {
			return false
		}
	}
	return true
}

func (it *PaginatedIterator[T]) fetch() bool {
	resp, err := it.client.Do(it.ctx, it.nextRequest)
	if err != nil {
		it.err = err
		return false
	}

	results, err := it.parseResults(resp)
	if err != nil {
		it.err = err
		return false
	}

	nextReq, err := it.paginator.NextPage(it.ctx, resp)
	if err != nil {
		it.err = err
		return false
	}

	it.current = results
	it.currentIdx = 0
	it.nextRequest = nextReq
	it.done = nextReq == nil
	return true
}

// Value returns the current item and moves past it.
func (it *PaginatedIterator[T]) Value() T {
	if it.currentIdx < len(it.current) {
		val := it.current[it.currentIdx]
		it.currentIdx++
		return val
	}
	var zero T
	return zero
}

// Err returns any error encountered.
func (it *PaginatedIterator[T]) Err() error {
	return it.err
}

// Close stops the iteration.
func (it *PaginatedIterator[T]) Close() error {
	it.done = true
	it.current = nil
	return nil
}
