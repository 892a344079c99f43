package usecase

import (
	"context"

	"campuscart/internal/domain/entity"
)

// UserCounts breaks the known users down by role.
type UserCounts struct {
	Total   int `json:"total"`
	Buyers  int `json:"buyers"`
	Sellers int `json:"sellers"`
	Admins  int `json:"admins"`
	Blocked int `json:"blocked"`
}

// InventoryCounts describes the listed items.
type InventoryCounts struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	OutOfStock int `json:"outOfStock"`
}

// CategoryCount is the share of listings in one category.
type CategoryCount struct {
	Category   entity.Category `json:"category"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// SellerStats counts the listings and posts of one person who can sell.
type SellerStats struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalItems      int    `json:"totalItems"`
	ActiveItems     int    `json:"activeItems"`
	OutOfStockItems int    `json:"outOfStockItems"`
	TotalPosts      int    `json:"totalPosts"`
}

// Analytics is the admin dashboard overview.
type Analytics struct {
	Users          UserCounts        `json:"users"`
	Inventory      InventoryCounts   `json:"inventory"`
	Categories     []CategoryCount   `json:"categories"`
	Sellers        []SellerStats     `json:"sellers"`
	RecentActivity []entity.Activity `json:"recentActivity"`
}

// DashboardUsecase defines the interface for the admin dashboard.
type DashboardUsecase interface {
	Analytics(ctx context.Context) (*Analytics, error)
}
