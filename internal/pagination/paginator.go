package pagination

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidPage    = errors.New("page must be >= 1")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrNilFetch       = errors.New("fetch function is nil")
	// ErrStalePage is returned when the page size changed or the paginator was reset while the
	// fetch was in flight. The fetched records are dropped.
	ErrStalePage = errors.New("pagination changed while page was loading")
)

// Source tells an Observer where a served page came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceFetch Source = "fetch"
)

// Observer receives paginator events. It is called with the paginator lock released.
type Observer interface {
	PageServed(source Source, elapsed time.Duration)
	FetchFailed(err error)
}

// State is a point-in-time snapshot of a Paginator.
type State struct {
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	TotalRecords int   `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
	IsLoading    bool  `json:"isLoading"`
	LoadedPages  []int `json:"loadedPages"`
}

type settings struct {
	pageSize int
	log      zerolog.Logger
	observer Observer
}

// Option configures a Paginator.
type Option func(*settings)

// WithPageSize sets the initial page size, clamped to [MinPageSize, MaxPageSize].
func WithPageSize(n int) Option {
	return func(s *settings) { s.pageSize = ClampPageSize(n) }
}

// WithLogger attaches a logger. Fetches are logged at debug level with pager=true.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.log = l.With().Bool("pager", true).Logger() }
}

// WithObserver registers an event sink, typically metrics.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// Paginator caches pages of T keyed by page number and fetches each page at most once for a
// given page size. One Paginator belongs to one consumer (a table view, an export job, a CLI run).
//
// A Paginator is safe for concurrent use. Loads of the same page share a single fetch; loads of
// different pages run concurrently and the last one to finish becomes the current page.
type Paginator[T any] struct {
	mu    sync.Mutex
	group singleflight.Group
	log   zerolog.Logger
	obs   Observer

	pageSize     int
	currentPage  int
	totalRecords int
	totalPages   int
	hasNext      bool
	hasPrev      bool
	inflight     int

	// generation is bumped whenever cached pages become invalid, so a fetch started
	// under an older page size can never land in the cache.
	generation uint64
	loaded     []int
	cache      map[int][]T
}

// New returns an empty paginator positioned on page 1 with unknown totals.
func New[T any](opts ...Option) *Paginator[T] {
	s := settings{pageSize: DefaultPageSize, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Paginator[T]{
		log:         s.log,
		obs:         s.observer,
		pageSize:    s.pageSize,
		currentPage: 1,
		cache:       make(map[int][]T),
	}
}

// LoadPage makes page the current page. A cached page is served without calling fetch;
// otherwise fetch is called once with the current page size and its records are cached.
// Fetch errors are returned unchanged and leave the cache untouched.
//
// If ctx is done before the fetch returns, LoadPage returns ctx.Err() at once. The fetch itself
// keeps running for any other load sharing it and receives ctx's values without its cancellation.
func (p *Paginator[T]) LoadPage(ctx context.Context, page int, fetch FetchFunc[T]) error {
	if page < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if fetch == nil {
		return ErrNilFetch
	}

	p.mu.Lock()
	if _, ok := p.cache[page]; ok {
		p.currentPage = page
		p.deriveFlags()
		p.mu.Unlock()
		p.log.Trace().Int("page", page).Msg("page served from cache")
		p.served(SourceCache, 0)
		return nil
	}
	gen, size := p.generation, p.pageSize
	p.inflight++
	p.mu.Unlock()

	start := time.Now()
	key := strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(page)
	// every waiter shares this fetch; none of them may cancel it for the others
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		return fetch(fetchCtx, page, size)
	})

	var (
		v   any
		err error
	)
	select {
	case r := <-ch:
		v, err = r.Val, r.Err
	case <-ctx.Done():
		p.mu.Lock()
		p.inflight--
		p.mu.Unlock()
		p.log.Debug().Err(ctx.Err()).Int("page", page).Msg("page load abandoned")
		return ctx.Err()
	}
	elapsed := time.Since(start)

	p.mu.Lock()
	p.inflight--
	if err != nil {
		p.mu.Unlock()
		p.log.Debug().Err(err).Int("page", page).Int("page_size", size).Msg("page fetch failed")
		if p.obs != nil {
			p.obs.FetchFailed(err)
		}
		return err
	}
	if gen != p.generation {
		p.mu.Unlock()
		p.log.Debug().Int("page", page).Int("page_size", size).Msg("discarding page fetched under stale page size")
		return fmt.Errorf("%w: page %d", ErrStalePage, page)
	}
	res := v.(Response[T])
	p.commit(page, res)
	p.mu.Unlock()

	p.log.Debug().
		Int("page", page).
		Int("page_size", size).
		Int("records", len(res.Data)).
		Int("total", res.Pagination.Total).
		Dur("took", elapsed).
		Msg("page fetched")
	p.served(SourceFetch, elapsed)
	return nil
}

// LoadNextPage loads currentPage+1. It does nothing when there is no next page or a fetch is in flight.
func (p *Paginator[T]) LoadNextPage(ctx context.Context, fetch FetchFunc[T]) error {
	p.mu.Lock()
	if !p.hasNext || p.inflight > 0 {
		p.mu.Unlock()
		return nil
	}
	next := p.currentPage + 1
	p.mu.Unlock()
	return p.LoadPage(ctx, next, fetch)
}

// LoadPreviousPage loads currentPage-1. It does nothing when there is no previous page or a fetch is in flight.
func (p *Paginator[T]) LoadPreviousPage(ctx context.Context, fetch FetchFunc[T]) error {
	p.mu.Lock()
	if !p.hasPrev || p.inflight > 0 {
		p.mu.Unlock()
		return nil
	}
	prev := p.currentPage - 1
	p.mu.Unlock()
	return p.LoadPage(ctx, prev, fetch)
}

// JumpToPage loads page if it lies within the known page range. Jumping to the current page is a no-op.
func (p *Paginator[T]) JumpToPage(ctx context.Context, page int, fetch FetchFunc[T]) error {
	p.mu.Lock()
	current, total := p.currentPage, p.totalPages
	p.mu.Unlock()

	if page == current {
		return nil
	}
	if page < 1 || page > total {
		return fmt.Errorf("%w: %d not in [1,%d]", ErrPageOutOfRange, page, total)
	}
	return p.LoadPage(ctx, page, fetch)
}

// ChangePageSize clamps n to [MinPageSize, MaxPageSize]. A different size drops every cached page
// and moves back to page 1. TotalPages is re-estimated from the last known total; HasNext and
// HasPrev stay false until a page is fetched under the new size.
func (p *Paginator[T]) ChangePageSize(n int) {
	n = ClampPageSize(n)

	p.mu.Lock()
	defer p.mu.Unlock()
	if n == p.pageSize {
		return
	}
	p.log.Debug().Int("from", p.pageSize).Int("to", n).Msg("page size changed")
	p.pageSize = n
	p.invalidate()
	p.totalPages = TotalPages(p.totalRecords, n)
	// Page 1 is not cached under the new size; navigation waits for the next fetch.
	p.hasNext = false
	p.hasPrev = false
}

// Reset drops every cached page and returns to page 1 with unknown totals. The page size is kept.
func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidate()
	p.totalRecords = 0
	p.totalPages = 0
	p.hasNext = false
	p.hasPrev = false
}

// State returns a snapshot of the pagination counters.
func (p *Paginator[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		CurrentPage:  p.currentPage,
		PageSize:     p.pageSize,
		TotalRecords: p.totalRecords,
		TotalPages:   p.totalPages,
		HasNext:      p.hasNext,
		HasPrev:      p.hasPrev,
		IsLoading:    p.inflight > 0,
		LoadedPages:  slices.Clone(p.loaded),
	}
}

func (p *Paginator[T]) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

func (p *Paginator[T]) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inflight > 0
}

// CurrentPageData returns the records of the current page, or nil if it is not cached.
func (p *Paginator[T]) CurrentPageData() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.cache[p.currentPage])
}

// PageData returns the cached records of page, or nil.
func (p *Paginator[T]) PageData(page int) []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.cache[page])
}

func (p *Paginator[T]) IsPageLoaded(page int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cache[page]
	return ok
}

// AllLoadedData concatenates cached pages in the order they were loaded.
func (p *Paginator[T]) AllLoadedData() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, page := range p.loaded {
		n += len(p.cache[page])
	}
	out := make([]T, 0, n)
	for _, page := range p.loaded {
		out = append(out, p.cache[page]...)
	}
	return out
}

// commit stores a fetched page and adopts its metadata. Caller holds p.mu.
func (p *Paginator[T]) commit(page int, res Response[T]) {
	if _, ok := p.cache[page]; !ok {
		p.loaded = append(p.loaded, page)
	}
	data := res.Data
	if data == nil {
		data = make([]T, 0)
	}
	p.cache[page] = data
	p.currentPage = page
	p.totalRecords = res.Pagination.Total
	p.totalPages = res.Pagination.TotalPages
	p.hasNext = res.Pagination.Next()
	p.hasPrev = res.Pagination.Prev()
}

// invalidate clears the cache and returns to page 1. Caller holds p.mu.
func (p *Paginator[T]) invalidate() {
	p.generation++
	p.cache = make(map[int][]T)
	p.loaded = nil
	p.currentPage = 1
}

func (p *Paginator[T]) deriveFlags() {
	p.hasNext = p.currentPage < p.totalPages
	p.hasPrev = p.currentPage > 1
}

func (p *Paginator[T]) served(src Source, elapsed time.Duration) {
	if p.obs != nil {
		p.obs.PageServed(src, elapsed)
	}
}
