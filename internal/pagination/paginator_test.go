package pagination

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	page, limit int
}

// stubFetch records every call and answers from a fixed total of records.
type stubFetch struct {
	mu    sync.Mutex
	calls []call
	total int
	err   error
}

func (s *stubFetch) fetch(_ context.Context, page, limit int) (Response[int], error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{page: page, limit: limit})
	s.mu.Unlock()
	if s.err != nil {
		return Response[int]{}, s.err
	}
	start := (page - 1) * limit
	items := make([]int, 0, limit)
	for i := start; i < start+limit && i < s.total; i++ {
		items = append(items, i)
	}
	return NewResponse(items, s.total, page, limit), nil
}

func (s *stubFetch) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestLoadPage_FirstPageScenario(t *testing.T) {
	ctx := context.Background()
	p := New[string](WithPageSize(100))

	var got []call
	fetch := func(_ context.Context, page, limit int) (Response[string], error) {
		got = append(got, call{page, limit})
		return Response[string]{
			Data:       []string{"a", "b"},
			Pagination: Meta{Total: 5, TotalPages: 3, Page: 1},
		}, nil
	}

	require.NoError(t, p.LoadPage(ctx, 1, fetch))

	assert.Equal(t, []call{{1, 100}}, got)
	assert.Equal(t, []string{"a", "b"}, p.CurrentPageData())
	st := p.State()
	assert.True(t, st.HasNext)
	assert.False(t, st.HasPrev)
	assert.Equal(t, 3, st.TotalPages)
	assert.Equal(t, 5, st.TotalRecords)
	assert.Equal(t, []int{1}, st.LoadedPages)
	assert.False(t, st.IsLoading)

	t.Run("cached page does not refetch", func(t *testing.T) {
		fetch2 := func(context.Context, int, int) (Response[string], error) {
			t.Fatal("fetch must not be called for a cached page")
			return Response[string]{}, nil
		}
		require.NoError(t, p.LoadPage(ctx, 1, fetch2))
		assert.Equal(t, 1, p.State().CurrentPage)
	})
}

func TestLoadPage_CachesEachPageOnce(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 35}
	p := New[int](WithPageSize(10))

	for _, page := range []int{1, 2, 1, 3, 2, 4, 3} {
		require.NoError(t, p.LoadPage(ctx, page, s.fetch))
		assert.Equal(t, page, p.State().CurrentPage)
	}

	assert.Equal(t, []call{{1, 10}, {2, 10}, {3, 10}, {4, 10}}, s.calls)
	assert.Equal(t, []int{1, 2, 3, 4}, p.State().LoadedPages)
	assert.True(t, p.IsPageLoaded(4))
	assert.False(t, p.IsPageLoaded(5))
	assert.Len(t, p.PageData(4), 5)
	assert.Nil(t, p.PageData(5))
	assert.Len(t, p.AllLoadedData(), 35)
}

func TestLoadPage_CachedPageRederivesFlags(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 30}
	p := New[int](WithPageSize(10))

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
	require.NoError(t, p.LoadPage(ctx, 3, s.fetch))
	st := p.State()
	assert.False(t, st.HasNext)
	assert.True(t, st.HasPrev)

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
	st = p.State()
	assert.True(t, st.HasNext)
	assert.False(t, st.HasPrev)
	assert.Equal(t, 2, s.count())
}

func TestLoadPage_FetchError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("network down")
	s := &stubFetch{err: boom}
	p := New[int]()

	err := p.LoadPage(ctx, 2, s.fetch)

	assert.ErrorIs(t, err, boom)
	st := p.State()
	assert.False(t, st.IsLoading)
	assert.NotContains(t, st.LoadedPages, 2)
	assert.False(t, p.IsPageLoaded(2))
	assert.Equal(t, 1, st.CurrentPage)
	assert.Empty(t, p.CurrentPageData())
}

func TestLoadPage_InvalidArguments(t *testing.T) {
	p := New[int]()
	s := &stubFetch{total: 10}

	assert.ErrorIs(t, p.LoadPage(context.Background(), 0, s.fetch), ErrInvalidPage)
	assert.ErrorIs(t, p.LoadPage(context.Background(), 1, nil), ErrNilFetch)
	assert.Zero(t, s.count())
}

func TestLoadPage_OptionalFlagsDerivedFromPage(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name     string
		meta     Meta
		wantNext bool
		wantPrev bool
	}{
		{name: "derived middle page", meta: Meta{Total: 30, TotalPages: 3, Page: 2}, wantNext: true, wantPrev: true},
		{name: "derived last page", meta: Meta{Total: 30, TotalPages: 3, Page: 3}, wantNext: false, wantPrev: true},
		{name: "explicit flags win", meta: Meta{Total: 30, TotalPages: 3, Page: 2, HasNext: &no, HasPrev: &yes}, wantNext: false, wantPrev: true},
		{name: "empty result", meta: Meta{Total: 0, TotalPages: 0, Page: 1}, wantNext: false, wantPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New[int]()
			fetch := func(context.Context, int, int) (Response[int], error) {
				return Response[int]{Pagination: tt.meta}, nil
			}
			require.NoError(t, p.LoadPage(context.Background(), tt.meta.Page, fetch))
			st := p.State()
			assert.Equal(t, tt.wantNext, st.HasNext)
			assert.Equal(t, tt.wantPrev, st.HasPrev)
			assert.True(t, p.IsPageLoaded(tt.meta.Page))
		})
	}
}

func TestLoadNextAndPreviousPage(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 25}
	p := New[int](WithPageSize(10))

	t.Run("no-op before first load", func(t *testing.T) {
		require.NoError(t, p.LoadNextPage(ctx, s.fetch))
		require.NoError(t, p.LoadPreviousPage(ctx, s.fetch))
		assert.Zero(t, s.count())
		assert.Equal(t, 1, p.State().CurrentPage)
	})

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))

	t.Run("walks forward to the last page", func(t *testing.T) {
		require.NoError(t, p.LoadNextPage(ctx, s.fetch))
		require.NoError(t, p.LoadNextPage(ctx, s.fetch))
		assert.Equal(t, 3, p.State().CurrentPage)
		assert.False(t, p.State().HasNext)

		require.NoError(t, p.LoadNextPage(ctx, s.fetch))
		assert.Equal(t, 3, p.State().CurrentPage)
		assert.Equal(t, 3, s.count())
	})

	t.Run("walks back through the cache", func(t *testing.T) {
		require.NoError(t, p.LoadPreviousPage(ctx, s.fetch))
		require.NoError(t, p.LoadPreviousPage(ctx, s.fetch))
		require.NoError(t, p.LoadPreviousPage(ctx, s.fetch))
		assert.Equal(t, 1, p.State().CurrentPage)
		assert.Equal(t, 3, s.count())
	})
}

func TestLoadNextPage_NoopWhileLoading(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 50}
	p := New[int](WithPageSize(10))
	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))

	release := make(chan struct{})
	started := make(chan struct{})
	blocking := func(ctx context.Context, page, limit int) (Response[int], error) {
		close(started)
		<-release
		return s.fetch(ctx, page, limit)
	}

	done := make(chan error, 1)
	go func() { done <- p.LoadPage(ctx, 4, blocking) }()
	<-started

	assert.True(t, p.IsLoading())
	before := p.State()
	require.NoError(t, p.LoadNextPage(ctx, s.fetch))
	require.NoError(t, p.LoadPreviousPage(ctx, s.fetch))
	assert.Equal(t, before, p.State())
	assert.Equal(t, 1, s.count())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, p.IsLoading())
	assert.Equal(t, 4, p.State().CurrentPage)
}

func TestJumpToPage(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 45}
	p := New[int](WithPageSize(10))

	assert.ErrorIs(t, p.JumpToPage(ctx, 2, s.fetch), ErrPageOutOfRange)
	assert.Zero(t, s.count())

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))

	require.NoError(t, p.JumpToPage(ctx, 1, s.fetch))
	assert.Equal(t, 1, s.count())

	assert.ErrorIs(t, p.JumpToPage(ctx, 6, s.fetch), ErrPageOutOfRange)
	assert.ErrorIs(t, p.JumpToPage(ctx, 0, s.fetch), ErrPageOutOfRange)

	require.NoError(t, p.JumpToPage(ctx, 5, s.fetch))
	assert.Equal(t, 5, p.State().CurrentPage)
	assert.Equal(t, []int{40, 41, 42, 43, 44}, p.CurrentPageData())
}

func TestChangePageSize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below minimum", in: 5, want: 10},
		{name: "above maximum", in: 5000, want: 1000},
		{name: "in range", in: 250, want: 250},
		{name: "zero", in: 0, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New[int]()
			p.ChangePageSize(tt.in)
			assert.Equal(t, tt.want, p.PageSize())
		})
	}
}

func TestChangePageSize_ClearsCache(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 300}
	p := New[int](WithPageSize(100))

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
	require.NoError(t, p.LoadPage(ctx, 2, s.fetch))

	t.Run("same size keeps the cache", func(t *testing.T) {
		p.ChangePageSize(100)
		assert.Equal(t, []int{1, 2}, p.State().LoadedPages)
		assert.Equal(t, 2, p.State().CurrentPage)
	})

	t.Run("new size drops every page", func(t *testing.T) {
		p.ChangePageSize(50)
		st := p.State()
		assert.Empty(t, st.LoadedPages)
		assert.Equal(t, 1, st.CurrentPage)
		assert.Equal(t, 50, st.PageSize)
		assert.False(t, p.IsPageLoaded(1))
		assert.Empty(t, p.CurrentPageData())
	})

	t.Run("refetches under the new size", func(t *testing.T) {
		require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
		assert.Equal(t, call{1, 50}, s.calls[len(s.calls)-1])
		assert.Len(t, p.CurrentPageData(), 50)
		assert.Equal(t, 6, p.State().TotalPages)
	})
}

func TestChangePageSize_NavigationWaitsForFetch(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 300}
	p := New[int](WithPageSize(100))

	require.NoError(t, p.LoadPage(ctx, 2, s.fetch))
	p.ChangePageSize(50)

	st := p.State()
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 6, st.TotalPages)
	assert.False(t, st.HasNext)
	assert.False(t, st.HasPrev)

	require.NoError(t, p.LoadNextPage(ctx, s.fetch))
	assert.Equal(t, 1, s.count())
	assert.Empty(t, p.State().LoadedPages)

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
	require.NoError(t, p.LoadNextPage(ctx, s.fetch))
	assert.Equal(t, []int{1, 2}, p.State().LoadedPages)
	assert.Equal(t, call{2, 50}, s.calls[len(s.calls)-1])
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 30}
	p := New[int](WithPageSize(10))

	require.NoError(t, p.LoadPage(ctx, 2, s.fetch))
	p.Reset()

	assert.Equal(t, State{CurrentPage: 1, PageSize: 10}, p.State())
	assert.Empty(t, p.AllLoadedData())

	require.NoError(t, p.LoadPage(ctx, 2, s.fetch))
	assert.Equal(t, 2, s.count())
}

func TestLoadPage_ConcurrentSamePageFetchesOnce(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(_ context.Context, page, limit int) (Response[int], error) {
		calls.Add(1)
		<-release
		return NewResponse([]int{1, 2, 3}, 3, page, limit), nil
	}

	p := New[int]()
	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = p.LoadPage(ctx, 1, fetch)
		}(i)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{1}, p.State().LoadedPages)
	assert.Equal(t, []int{1, 2, 3}, p.CurrentPageData())
}

func TestLoadPage_SharedFetchOutlivesCancelledCaller(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, page, limit int) (Response[int], error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
		case <-ctx.Done():
			return Response[int]{}, ctx.Err()
		}
		return NewResponse([]int{7, 8}, 2, page, limit), nil
	}

	p := New[int]()
	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	errA := make(chan error, 1)
	go func() { errA <- p.LoadPage(ctxA, 1, fetch) }()
	<-started

	errB := make(chan error, 1)
	go func() { errB <- p.LoadPage(context.Background(), 1, fetch) }()
	time.Sleep(10 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled load did not return")
	}

	close(release)
	select {
	case err := <-errB:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiting load did not return")
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, p.IsPageLoaded(1))
	assert.Equal(t, []int{7, 8}, p.CurrentPageData())
	assert.False(t, p.IsLoading())
}

func TestLoadPage_WaiterHonoursOwnDeadline(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(_ context.Context, page, limit int) (Response[int], error) {
		close(started)
		<-release
		return NewResponse([]int{1}, 1, page, limit), nil
	}

	p := New[int]()
	errA := make(chan error, 1)
	go func() { errA <- p.LoadPage(context.Background(), 1, fetch) }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	begin := time.Now()
	err := p.LoadPage(ctx, 1, fetch)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(begin), 250*time.Millisecond)
	assert.False(t, p.IsPageLoaded(1))

	close(release)
	require.NoError(t, <-errA)
	assert.True(t, p.IsPageLoaded(1))
}

func TestLoadPage_StaleFetchIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s := &stubFetch{total: 100}
	started := make(chan struct{})
	release := make(chan struct{})
	blocking := func(ctx context.Context, page, limit int) (Response[int], error) {
		close(started)
		<-release
		return s.fetch(ctx, page, limit)
	}

	p := New[int](WithPageSize(10))
	done := make(chan error, 1)
	go func() { done <- p.LoadPage(ctx, 3, blocking) }()
	<-started

	p.ChangePageSize(20)
	close(release)

	err := <-done
	assert.ErrorIs(t, err, ErrStalePage)
	assert.False(t, p.IsPageLoaded(3))
	assert.Empty(t, p.State().LoadedPages)
	assert.False(t, p.IsLoading())
}

type recordingObserver struct {
	mu      sync.Mutex
	sources []Source
	errs    []error
}

func (r *recordingObserver) PageServed(src Source, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
}

func (r *recordingObserver) FetchFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestObserver(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	s := &stubFetch{total: 20}
	p := New[int](WithPageSize(10), WithObserver(obs))

	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))
	require.NoError(t, p.LoadPage(ctx, 1, s.fetch))

	s.err = errors.New("boom")
	require.Error(t, p.LoadPage(ctx, 2, s.fetch))

	assert.Equal(t, []Source{SourceFetch, SourceCache}, obs.sources)
	assert.Len(t, obs.errs, 1)
}
