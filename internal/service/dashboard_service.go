package service

import (
	"context"
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/cache"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/logger"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService aggregates back-office metrics.
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverview is the back-office landing snapshot.
type DashboardOverview struct {
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	TotalCustomers  int64            `json:"total_customers"`
	PendingArtisans int64            `json:"pending_artisans"`
	Revenue7Days    models.Money     `json:"revenue_7_days"`
	Revenue30Days   models.Money     `json:"revenue_30_days"`
}

// GetOverview returns the dashboard snapshot, cached briefly.
func (s *DashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	const cacheKey = "dashboard:overview"
	if cache.Enabled() {
		var cached DashboardOverview
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr != nil {
			logger.Warnw("dashboard_cache_read_failed", "error", cacheErr)
		} else if hit {
			return &cached, nil
		}
	}

	ordersByStatus, err := s.repo.CountOrdersByStatus()
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CountCustomers()
	if err != nil {
		return nil, err
	}
	pendingArtisans, err := s.repo.CountPendingArtisans()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	revenue7, err := s.repo.SumPaymentsSince(now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	revenue30, err := s.repo.SumPaymentsSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		OrdersByStatus:  ordersByStatus,
		TotalCustomers:  customers,
		PendingArtisans: pendingArtisans,
		Revenue7Days:    models.NewMoneyFromDecimal(revenue7),
		Revenue30Days:   models.NewMoneyFromDecimal(revenue30),
	}
	_ = cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL)
	return overview, nil
}
