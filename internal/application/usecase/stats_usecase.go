// internal/application/usecase/stats_usecase.go
package usecase

import (
	"context"
	"time"

	artdom "atelier/internal/domain/artwork"
	userdom "atelier/internal/domain/user"
)

// DashboardStats is the admin overview. Counts and revenue are simple
// predicate filters over the stores; no independent logic.
type DashboardStats struct {
	Users           int `json:"users"`
	Artworks        int `json:"artworks"`
	ArtworksForSale int `json:"artworksForSale"`
	ArtworksSold    int `json:"artworksSold"`
	Orders          int `json:"orders"`
	Revenue         int `json:"revenue"`
}

type StatsUsecase struct {
	users    userdom.Repository
	artworks artdom.Repository
	orders   *OrderUsecase
}

func NewStatsUsecase(users userdom.Repository, artworks artdom.Repository, orders *OrderUsecase) *StatsUsecase {
	return &StatsUsecase{users: users, artworks: artworks, orders: orders}
}

func (uc *StatsUsecase) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Users, err = uc.users.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.Artworks, err = uc.artworks.Count(ctx, artdom.Filter{}); err != nil {
		return DashboardStats{}, err
	}

	forSale := true
	if stats.ArtworksForSale, err = uc.artworks.Count(ctx, artdom.Filter{ForSale: &forSale}); err != nil {
		return DashboardStats{}, err
	}

	all, err := uc.artworks.List(ctx, artdom.Filter{})
	if err != nil {
		return DashboardStats{}, err
	}
	for _, a := range all {
		if a.Sold {
			stats.ArtworksSold++
		}
	}

	rep, err := uc.orders.SalesReport(ctx, time.Time{}, time.Time{})
	if err != nil {
		return DashboardStats{}, err
	}
	stats.Orders = rep.TotalOrders
	stats.Revenue = rep.TotalRevenue

	return stats, nil
}
