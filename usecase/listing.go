package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/internal/httpclient"
	"github.com/fastygo/warehouse-console/internal/metrics"
	"github.com/fastygo/warehouse-console/pkg/envelope"
)

// Query is a list request: pagination plus the resource's typed filters.
type Query[F any] struct {
	Page    int `json:"page"`
	Size    int `json:"size"`
	Filters F   `json:"filters"`
}

// ListState is one resource's cached list. Every change replaces the whole page at once.
type ListState[T any] struct {
	mu   sync.RWMutex
	page domain.Page[T]
}

func NewListState[T any](size int) *ListState[T] {
	return &ListState[T]{page: domain.EmptyPage[T](1, size)}
}

func (s *ListState[T]) Replace(p domain.Page[T]) {
	if p.Items == nil {
		p.Items = []T{}
	}
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
}

// Reset drops cached items so a failed refresh never leaves stale records visible.
func (s *ListState[T]) Reset(page, size int) {
	s.Replace(domain.EmptyPage[T](page, size))
}

// Snapshot returns a copy callers may keep.
func (s *ListState[T]) Snapshot() domain.Page[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.page
	out.Items = append([]T(nil), s.page.Items...)
	if out.Items == nil {
		out.Items = []T{}
	}
	return out
}

// Current holds the item a detail view is looking at.
type Current[T any] struct {
	mu   sync.RWMutex
	item *T
}

func (c *Current[T]) Set(item *T) {
	c.mu.Lock()
	c.item = item
	c.mu.Unlock()
}

func (c *Current[T]) Get() *T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.item
}

// Lister issues the list request for one resource.
type Lister[F any] func(ctx context.Context, page, size int, filters F) (*httpclient.Response, error)

// Collection couples a ListState with the call that fills it and remembers the last
// query so mutations can resynchronize. Two concurrent fetches race; whichever resolves
// last wins.
type Collection[T any, F any] struct {
	name        string
	list        Lister[F]
	defaultSize int
	state       *ListState[T]

	mu   sync.Mutex
	last Query[F]
}

func NewCollection[T any, F any](name string, list Lister[F], defaultSize int) *Collection[T, F] {
	if defaultSize < 1 {
		defaultSize = 10
	}
	return &Collection[T, F]{
		name:        name,
		list:        list,
		defaultSize: defaultSize,
		state:       NewListState[T](defaultSize),
		last:        Query[F]{Page: 1, Size: defaultSize},
	}
}

func (c *Collection[T, F]) Name() string {
	return c.name
}

// Normalize applies the collection's pagination defaults.
func (c *Collection[T, F]) Normalize(q Query[F]) Query[F] {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = c.defaultSize
	}
	return q
}

// Fetch loads one page. On any failure, including an unrecognized body, the state is
// reset and the error returned.
func (c *Collection[T, F]) Fetch(ctx context.Context, q Query[F]) (domain.Page[T], error) {
	q = c.Normalize(q)
	c.mu.Lock()
	c.last = q
	c.mu.Unlock()

	page, err := c.load(ctx, q)
	metrics.RecordListFetch(c.name, err)
	if err != nil {
		c.state.Reset(q.Page, q.Size)
		return c.state.Snapshot(), err
	}
	c.state.Replace(page)
	return page, nil
}

// Refetch repeats the last query.
func (c *Collection[T, F]) Refetch(ctx context.Context) (domain.Page[T], error) {
	return c.Fetch(ctx, c.LastQuery())
}

func (c *Collection[T, F]) LastQuery() Query[F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Collection[T, F]) Snapshot() domain.Page[T] {
	return c.state.Snapshot()
}

func (c *Collection[T, F]) load(ctx context.Context, q Query[F]) (domain.Page[T], error) {
	resp, err := c.list(ctx, q.Page, q.Size, q.Filters)
	if err != nil {
		return domain.Page[T]{}, err
	}
	if !resp.JSON {
		return domain.Page[T]{}, domain.NewError(domain.ErrCodeUnrecognized, c.name+": list response is not JSON")
	}
	res := envelope.Normalize[T](resp.Body)
	if !res.Recognized() {
		return domain.Page[T]{}, domain.NewError(domain.ErrCodeUnrecognized, c.name+": "+res.Reason)
	}
	return domain.Page[T]{Items: res.Items, Total: res.Total, Page: q.Page, Size: q.Size}, nil
}

// Refresher is any collection that can repeat its last query.
type Refresher interface {
	Name() string
	Resync(ctx context.Context) error
}

// Resync refreshes collections after a mutation. Refresh failures were already reported
// by the client and leave the collection reset, so the mutation itself still succeeds.
func Resync(ctx context.Context, logger *zap.Logger, collections ...Refresher) {
	for _, c := range collections {
		if err := c.Resync(ctx); err != nil && logger != nil {
			logger.Warn("resynchronize after mutation", zap.String("resource", c.Name()), zap.Error(err))
		}
	}
}

// Resync repeats the last query, discarding the page.
func (c *Collection[T, F]) Resync(ctx context.Context) error {
	_, err := c.Refetch(ctx)
	return err
}
