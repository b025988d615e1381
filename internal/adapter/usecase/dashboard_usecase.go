package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"bookpress/internal/core/port"
)

// DashboardUseCase aggregates the admin overview, caching the payload in
// Redis between requests. Cache failures degrade to a direct read.
type DashboardUseCase struct {
	subscribers port.SubscriberRepository
	orders      port.OrderRepository
	stats       port.StatsRepository
	cache       port.StatsCache
	logger      *slog.Logger
}

// NewDashboardUseCase creates the dashboard service.
func NewDashboardUseCase(
	subscribers port.SubscriberRepository,
	orders port.OrderRepository,
	stats port.StatsRepository,
	cache port.StatsCache,
	logger *slog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		subscribers: subscribers,
		orders:      orders,
		stats:       stats,
		cache:       cache,
		logger:      logger,
	}
}

// Stats returns the dashboard payload.
func (u *DashboardUseCase) Stats(ctx context.Context) (*port.DashboardStats, error) {
	if cached, err := u.cache.Get(ctx); err != nil {
		u.logger.Warn("stats cache read failed", slog.Any("error", err))
	} else if cached != nil {
		return cached, nil
	}

	subs, err := u.subscribers.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}
	orderCount, revenue, err := u.orders.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}
	byStatus, err := u.stats.CountNewslettersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("newsletter counts: %w", err)
	}

	s := &port.DashboardStats{
		ActiveSubscribers: subs,
		Orders:            orderCount,
		RevenueCents:      revenue,
		Newsletters:       byStatus,
	}
	if err := u.cache.Set(ctx, s); err != nil {
		u.logger.Warn("stats cache write failed", slog.Any("error", err))
	}
	return s, nil
}
