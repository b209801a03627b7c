package site

import "context"

// DashboardStats summarises the admin dashboard.
type DashboardStats struct {
	Orders          int     `json:"orders"`
	CompletedOrders int     `json:"completedOrders"`
	FailedOrders    int     `json:"failedOrders"`
	Revenue         float64 `json:"revenue"`
	Submissions     int     `json:"submissions"`
	Testimonials    int     `json:"testimonials"`
}

func (s *Site) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return stats, err
	}
	stats.Orders = len(orders)
	for _, order := range orders {
		switch order.Status {
		case OrderCompleted:
			stats.CompletedOrders++
			stats.Revenue += order.Amount
		case OrderFailed:
			stats.FailedOrders++
		}
	}
	if stats.Submissions, err = s.Submissions.Count(ctx); err != nil {
		return stats, err
	}
	if stats.Testimonials, err = s.Testimonials.Count(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
