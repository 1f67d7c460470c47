package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/linesmerrill/police-records-api/api"
	"github.com/linesmerrill/police-records-api/config"
	"github.com/linesmerrill/police-records-api/databases"
	"github.com/linesmerrill/police-records-api/models"
)

// Dashboard cache timing
const (
	DashboardRefreshSpec = "@every 5m"
	DashboardMaxAge      = 10 * time.Minute
)

// DashboardCache holds the last computed stats snapshot
type DashboardCache struct {
	DB     databases.DashboardDatabase
	MaxAge time.Duration

	mu    sync.RWMutex
	stats *models.DashboardStats
	now   func() time.Time
}

// NewDashboardCache returns an empty cache over db
func NewDashboardCache(db databases.DashboardDatabase) *DashboardCache {
	return &DashboardCache{DB: db, MaxAge: DashboardMaxAge, now: time.Now}
}

// Refresh recomputes the snapshot. The scheduler calls it periodically.
func (c *DashboardCache) Refresh(ctx context.Context) error {
	stats, err := c.DB.Stats(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.stats = stats
	c.mu.Unlock()
	return nil
}

// Get serves the cached snapshot while it is fresh and recomputes it otherwise
func (c *DashboardCache) Get(ctx context.Context) (*models.DashboardStats, error) {
	c.mu.RLock()
	stats := c.stats
	c.mu.RUnlock()
	if stats != nil && c.clock().Sub(stats.GeneratedAt) < c.MaxAge {
		return stats, nil
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats, nil
}

func (c *DashboardCache) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Dashboard exported for testing purposes
type Dashboard struct {
	Cache *DashboardCache
}

// DashboardStatsHandler returns the aggregate statistics snapshot
func (d Dashboard) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := d.Cache.Get(ctx)
	if err != nil {
		config.ErrorStatus("failed to compute dashboard stats", http.StatusInternalServerError, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Data: stats})
}
