package admin

import (
	"context"
	"fmt"

	"localbooker/models"
	"localbooker/utils"

	"go.uber.org/zap"
)

// DashboardStats assembles the admin dashboard payload: totals, monthly
// series, revenue attribution, and the most recent bookings.
func (a *DefaultAdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	log := utils.GetLogger()

	var err error
	if stats.TotalUsers, err = a.Users.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalServices, err = a.Services.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	if stats.TotalBookings, err = a.Bookings.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if stats.TotalRevenue, err = a.Bookings.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	// Chart series are secondary; a failed aggregation degrades to an empty
	// series instead of failing the whole dashboard.
	if stats.BookingsMonthly, err = a.Bookings.MonthlyBookings(ctx); err != nil {
		log.Warn("monthly bookings aggregation failed", zap.Error(err))
	}
	if stats.RevenueMonthly, err = a.Bookings.MonthlyRevenue(ctx); err != nil {
		log.Warn("monthly revenue aggregation failed", zap.Error(err))
	}
	if stats.UsersGrowth, err = a.Users.MonthlyGrowth(ctx); err != nil {
		log.Warn("user growth aggregation failed", zap.Error(err))
	}
	if stats.RevenueByService, err = a.Bookings.RevenueByService(ctx); err != nil {
		log.Warn("revenue by service aggregation failed", zap.Error(err))
	}
	if stats.RecentBookings, err = a.Bookings.Recent(ctx, 5); err != nil {
		log.Warn("recent bookings query failed", zap.Error(err))
	}
	return stats, nil
}
