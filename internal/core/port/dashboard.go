package port

import "context"

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	ActiveSubscribers int64            `json:"activeSubscribers"`
	Orders            int64            `json:"orders"`
	RevenueCents      int64            `json:"revenueCents"`
	Newsletters       map[string]int64 `json:"newslettersByStatus"`
}

// StatsCache caches the dashboard payload between requests. A miss is
// reported as (nil, nil).
type StatsCache interface {
	Get(ctx context.Context) (*DashboardStats, error)
	Set(ctx context.Context, s *DashboardStats) error
}

// StatsRepository aggregates the counts the dashboard shows.
type StatsRepository interface {
	CountNewslettersByStatus(ctx context.Context) (map[string]int64, error)
}

// DashboardUseCase exposes the admin overview.
type DashboardUseCase interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
