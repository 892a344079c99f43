package usecase

import (
	"context"

	"campuscart/internal/domain/entity"
)

// SortOrder orders browse results.
type SortOrder string

const (
	SortByName      SortOrder = "name"
	SortByPriceLow  SortOrder = "price-low"
	SortByPriceHigh SortOrder = "price-high"
	SortByNewest    SortOrder = "newest"
)

// BrowseFilter narrows the listings shown on the browse page. Empty fields
// match everything.
type BrowseFilter struct {
	Search   string
	Category entity.Category
	Sort     SortOrder
}

// ListItemInput is what a seller fills in on the sell form.
type ListItemInput struct {
	Name        string
	Category    entity.Category
	Price       float64
	Quantity    int
	Description string
	File        *entity.Attachment
	Images      []string
	QRCode      string
}

// ListingUsecase defines the interface for listing management use cases.
type ListingUsecase interface {
	// ListItem creates a listing owned by seller.
	ListItem(ctx context.Context, seller *entity.Person, input *ListItemInput) (*entity.Item, error)

	// Relist copies one of owner's listings under a fresh id.
	Relist(ctx context.Context, owner *entity.Person, itemID string) (*entity.Item, error)

	// Browse returns the listings matching filter.
	Browse(ctx context.Context, filter BrowseFilter) ([]*entity.Item, error)

	// GetItem returns a single listing.
	GetItem(ctx context.Context, itemID string) (*entity.Item, error)

	// UpdateQuantity changes the stock of a listing.
	UpdateQuantity(ctx context.Context, itemID string, update entity.QuantityUpdate) (*entity.Item, error)
}
