package browsecontroller

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/filters"
	"github.com/imamnura/mini-ecommerce-api/listing"
	"github.com/imamnura/mini-ecommerce-api/middleware"
)

// CategorySource is the slice of the catalog client the filter sidebar
// needs.
type CategorySource interface {
	Categories(ctx context.Context) ([]string, error)
}

// Manager owns one listing controller per user. The controller for a user is
// created on first use and kept for the process lifetime, so the accumulated
// listing survives across requests the way page state does in the browser.
type Manager struct {
	mu          sync.Mutex
	controllers map[int]*listing.Controller
	fetcher     listing.Fetcher
	pageSize    int
	debounce    time.Duration
}

func NewManager(fetcher listing.Fetcher, pageSize int, debounce time.Duration) *Manager {
	return &Manager{
		controllers: make(map[int]*listing.Controller),
		fetcher:     fetcher,
		pageSize:    pageSize,
		debounce:    debounce,
	}
}

// For returns the controller for userID. A freshly created controller loads
// its first page before returning.
func (m *Manager) For(userID int) *listing.Controller {
	m.mu.Lock()
	ctl, ok := m.controllers[userID]
	if ok {
		m.mu.Unlock()
		return ctl
	}
	ctl = listing.NewController(m.fetcher, m.pageSize, m.debounce)
	m.controllers[userID] = ctl
	m.mu.Unlock()

	ctl.Reload("")
	return ctl
}

func criteriaFromQuery(c *gin.Context) filters.Criteria {
	crit := filters.Criteria{
		Price:    c.DefaultQuery("price", filters.All),
		Category: c.DefaultQuery("category", filters.All),
		Location: c.DefaultQuery("location", filters.All),
	}
	if r := c.Query("rating"); r != "" && r != filters.All {
		if v, err := strconv.ParseFloat(r, 64); err == nil {
			crit.MinRating = v
		}
	}
	return crit
}

// GetListing returns the caller's accumulated listing with the requested
// filters applied, plus the option sets for the filter sidebar. Filters are
// re-evaluated from the raw accumulation on every call.
// GET /api/browse
func GetListing(m *Manager, categories CategorySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		view := m.For(userID).View()
		visible := filters.Apply(view.Products, criteriaFromQuery(c))

		options, err := categories.Categories(c.Request.Context())
		if err != nil {
			// Degraded mode: offer the categories already on screen.
			options = filters.CategoriesOf(view.Products)
		}

		resp := gin.H{
			"products":       visible,
			"total":          view.Total,
			"cursor":         view.Cursor,
			"initialLoading": view.InitialLoading,
			"loadingMore":    view.LoadingMore,
			"searching":      view.Searching,
			"categories":     options,
			"locations":      filters.Locations,
		}
		if view.Err != nil {
			resp["error"] = "Failed to fetch products"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Search records a search keystroke. The reload happens only after the text
// settles for the debounce window, so rapid typing costs one fetch.
// POST /api/browse/search
func Search(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var input struct {
			Q string `json:"q"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		m.For(userID).SetSearch(input.Q)
		c.JSON(http.StatusAccepted, gin.H{"message": "Search scheduled"})
	}
}

// LoadMore is the sentinel-visibility trigger. The response reports whether
// the trigger was honored; a refused or failed trigger is simply fired again
// by more scrolling.
// POST /api/browse/more
func LoadMore(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		triggered := m.For(userID).LoadMore()
		c.JSON(http.StatusOK, gin.H{"triggered": triggered})
	}
}
