package listing

import (
	"context"
	"sync"
	"time"

	"github.com/imamnura/mini-ecommerce-api/models"
)

const (
	// DefaultPageSize matches the storefront grid.
	DefaultPageSize = 12
	// DefaultDebounce is the quiet interval a search text must survive
	// unchanged before a reload fires.
	DefaultDebounce = 500 * time.Millisecond

	fetchTimeout = 10 * time.Second
)

// Fetcher is the slice of the catalog client the controller needs.
type Fetcher interface {
	Products(ctx context.Context, limit, skip int, query string) (*models.ProductsResponse, error)
}

// View is a point-in-time copy of the controller state.
type View struct {
	Products       []models.Product
	Total          int
	Cursor         int
	InitialLoading bool
	LoadingMore    bool
	Searching      bool
	Err            error
}

// Controller accumulates paginated catalog results. It owns the pagination
// cursor, the loading flags and the debounced search text. Reloads bump a
// generation counter; any fetch that resolves after a newer reload observes
// a stale generation and is discarded without touching state.
type Controller struct {
	mu       sync.Mutex
	fetcher  Fetcher
	pageSize int
	debounce time.Duration

	products []models.Product
	total    int
	cursor   int
	search   string

	initialLoading bool
	loadingMore    bool
	searching      bool
	loadErr        error

	gen        uint64
	timer      *time.Timer
	pending    string
	pendingGen uint64
	closed     bool
}

func NewController(fetcher Fetcher, pageSize int, debounce time.Duration) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		fetcher:        fetcher,
		pageSize:       pageSize,
		debounce:       debounce,
		initialLoading: true,
	}
}

// Reload resets to page zero and fetches the first batch for text. An empty
// text means the unfiltered listing. On failure the accumulated results are
// cleared and the error surfaced through View.
func (c *Controller) Reload(text string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.search = text
	c.searching = text != ""
	c.initialLoading = true
	c.loadingMore = false
	c.loadErr = nil
	c.products = nil
	c.cursor = 0
	c.total = 0
	size := c.pageSize
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	resp, err := c.fetcher.Products(ctx, size, 0, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer reload superseded this fetch while it was in flight.
		return
	}
	c.initialLoading = false
	if err != nil {
		c.products = nil
		c.loadErr = err
		return
	}
	c.products = resp.Products
	c.total = resp.Total
	c.cursor = size
}

// LoadMore fetches the next page when the trailing sentinel trigger should
// be honored. It reports whether a fetch was attempted: the trigger is
// refused while another load-more is in flight, during an initial load,
// while searching, and once the cursor has reached the total. Failures are
// dropped silently; firing the trigger again retries.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	if c.loadingMore || c.initialLoading || c.searching || c.cursor >= c.total {
		c.mu.Unlock()
		return false
	}
	c.loadingMore = true
	gen := c.gen
	skip := c.cursor
	size := c.pageSize
	text := c.search
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	resp, err := c.fetcher.Products(ctx, size, skip, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A reload reset the state after this fetch started; its batch no
		// longer belongs to what is on screen.
		return true
	}
	c.loadingMore = false
	if err != nil {
		return true
	}
	c.products = append(c.products, resp.Products...)
	c.cursor += size
	return true
}

// SetSearch records a keystroke. The reload fires only once the text has
// been stable for the debounce window; every call invalidates the previous
// countdown. Each countdown carries its own generation: Stop cannot unschedule
// a callback that already fired, so a superseded callback has to notice on
// its own.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = text
	c.pendingGen++
	gen := c.pendingGen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.fireSearch(gen) })
}

func (c *Controller) fireSearch(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.pendingGen {
		c.mu.Unlock()
		return
	}
	text := c.pending
	c.mu.Unlock()
	c.Reload(text)
}

// Close invalidates any pending debounce countdown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	products := make([]models.Product, len(c.products))
	copy(products, c.products)
	return View{
		Products:       products,
		Total:          c.total,
		Cursor:         c.cursor,
		InitialLoading: c.initialLoading,
		LoadingMore:    c.loadingMore,
		Searching:      c.searching,
		Err:            c.loadErr,
	}
}
