package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/repository"
	"campuscart/internal/domain/service"
	"campuscart/internal/domain/validation"
	logs "campuscart/internal/infra/log"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// listingService implements the ListingUsecase interface.
type listingService struct {
	txManager repository.TransactionManager
	factory   *entity.Factory
	qrService service.QRCodeService
	logger    *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(
	txManager repository.TransactionManager,
	factory *entity.Factory,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.ListingUsecase {
	return &listingService{
		txManager: txManager,
		factory:   factory,
		qrService: qrService,
		logger:    logger,
	}
}

// log returns a run-scoped logger if available, otherwise falls back to the service's logger.
func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return logs.LoggerOrDefault(ctx, srv.logger)
}

// ListItem creates a listing owned by seller and stores it.
func (srv *listingService) ListItem(ctx context.Context, seller *entity.Person, input *usecase.ListItemInput) (*entity.Item, error) {
	if seller == nil || !seller.CanSell() || seller.Seller == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only active sellers and admins can list items")
	}
	if err := validation.Category(input.Category.String()); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Listing item", slog.String("seller_id", seller.ID), slog.String("name", input.Name))

	item, err := srv.factory.CreateItem(entity.ItemInput{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		File:        input.File,
		Description: input.Description,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		QRCode:      srv.contactQR(ctx, seller, input.QRCode),
	})
	if err != nil {
		srv.log(ctx).Warn("Rejected listing", slog.Any("error", err), slog.String("seller_id", seller.ID))

		return nil, errors.Wrap(err, "failed to create item")
	}

	for _, url := range input.Images {
		if !item.AddImage(url) {
			return nil, domainerrors.Validation("images", "invalid image url "+url)
		}
	}

	if err := srv.publish(ctx, seller, item); err != nil {
		srv.log(ctx).Error("Failed to list item", slog.Any("error", err), slog.String("seller_id", seller.ID))

		return nil, errors.Wrap(err, "failed to list item")
	}
	srv.log(ctx).Info("Successfully listed item", slog.String("item_id", item.ID), slog.String("seller_id", seller.ID))

	return item, nil
}

// Relist copies one of owner's listings under a fresh id and stores the copy.
func (srv *listingService) Relist(ctx context.Context, owner *entity.Person, itemID string) (*entity.Item, error) {
	if owner == nil || !owner.CanSell() || owner.Seller == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only active sellers and admins can relist items")
	}
	srv.log(ctx).Info("Relisting item", slog.String("seller_id", owner.ID), slog.String("item_id", itemID))

	source, err := srv.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if source.SellerID != owner.ID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only the owner can relist a listing")
	}

	item, err := srv.factory.CloneItem(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to copy listing")
	}

	if err := srv.publish(ctx, owner, item); err != nil {
		srv.log(ctx).Error("Failed to relist item", slog.Any("error", err), slog.String("item_id", itemID))

		return nil, errors.Wrap(err, "failed to relist item")
	}
	srv.log(ctx).Info("Successfully relisted item", slog.String("item_id", item.ID), slog.String("source_id", itemID))

	return item, nil
}

// publish appends item to the listings and to every stored copy of seller in
// one transaction, then attaches it to seller itself.
func (srv *listingService) publish(ctx context.Context, seller *entity.Person, item *entity.Item) error {
	attach := func(p *entity.Person) error {
		return p.AddListing(item)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ListingRepo().Append(ctx, item); err != nil {
			return errors.Wrap(err, "failed to append listing")
		}

		if err := updateKnownUser(ctx, repoFactory.UserRepo(), seller.ID, attach); err != nil {
			return err
		}

		return updateCurrentUser(ctx, repoFactory.SessionRepo(), seller.ID, attach)
	})
	if err != nil {
		return err
	}

	return attach(seller)
}

// contactQR returns supplied, or a QR code for the seller's WhatsApp number
// when nothing was supplied. Generation failures only cost the QR code.
func (srv *listingService) contactQR(ctx context.Context, seller *entity.Person, supplied string) string {
	if supplied != "" || seller.WhatsApp == "" || srv.qrService == nil {
		return supplied
	}

	qr, err := srv.qrService.GenerateContactQR(seller.WhatsApp)
	if err != nil {
		srv.log(ctx).Warn("Failed to generate contact QR code", slog.Any("error", err), slog.String("seller_id", seller.ID))

		return ""
	}

	return qr
}

// Browse returns the listings matching filter.
func (srv *listingService) Browse(ctx context.Context, filter usecase.BrowseFilter) ([]*entity.Item, error) {
	var items []*entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		items, err = repoFactory.ListingRepo().List(ctx)

		return err
	})

	if err != nil {
		srv.log(ctx).Error("Failed to browse listings", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to browse listings")
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items = slices.DeleteFunc(items, func(item *entity.Item) bool {
		if filter.Category != "" && item.Category != filter.Category {
			return true
		}
		if search == "" {
			return false
		}

		return !strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search)
	})

	sortListings(items, filter.Sort)
	srv.log(ctx).Debug("Browsed listings", slog.Int("count", len(items)))

	return items, nil
}

func sortListings(items []*entity.Item, order usecase.SortOrder) {
	switch order {
	case usecase.SortByName:
		coll := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(items, func(a, b *entity.Item) int {
			return coll.CompareString(a.Name, b.Name)
		})
	case usecase.SortByPriceLow:
		slices.SortStableFunc(items, func(a, b *entity.Item) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case usecase.SortByPriceHigh:
		slices.SortStableFunc(items, func(a, b *entity.Item) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case usecase.SortByNewest:
		slices.SortStableFunc(items, func(a, b *entity.Item) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// GetItem returns a single listing.
func (srv *listingService) GetItem(ctx context.Context, itemID string) (*entity.Item, error) {
	var item *entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		item, err = findListing(ctx, repoFactory.ListingRepo(), itemID)

		return err
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get listing")
	}

	return item, nil
}

// UpdateQuantity changes the stock of a listing and of its copy in the seller's record.
func (srv *listingService) UpdateQuantity(ctx context.Context, itemID string, update entity.QuantityUpdate) (*entity.Item, error) {
	srv.log(ctx).Debug("Updating listing quantity", slog.String("item_id", itemID))

	var item *entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		var err error
		item, err = findListing(ctx, listingRepo, itemID)
		if err != nil {
			return err
		}

		item.UpdateQuantity(update)
		if err := listingRepo.Update(ctx, item); err != nil {
			return errors.Wrap(err, "failed to update listing")
		}

		return updateKnownUser(ctx, repoFactory.UserRepo(), item.SellerID, func(p *entity.Person) error {
			for _, owned := range p.Listings() {
				if owned.ID == itemID {
					owned.UpdateQuantity(entity.SetTo(item.Quantity))
				}
			}

			return nil
		})
	})

	if err != nil {
		srv.log(ctx).Error("Failed to update listing quantity", slog.Any("error", err), slog.String("item_id", itemID))

		return nil, errors.Wrap(err, "failed to update listing quantity")
	}

	return item, nil
}

func findListing(ctx context.Context, listingRepo repository.ListingRepository, itemID string) (*entity.Item, error) {
	item, err := listingRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "listing not found")
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	return item, nil
}

// updateCurrentUser applies change to the logged-in person when it is id.
func updateCurrentUser(ctx context.Context, sessionRepo repository.SessionRepository, id string, change func(*entity.Person) error) error {
	current, err := sessionRepo.Current(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get current user")
	}
	if current == nil || current.ID != id {
		return nil
	}

	if err := change(current); err != nil {
		return err
	}

	if err := sessionRepo.SetCurrent(ctx, current); err != nil {
		return errors.Wrap(err, "failed to update current user")
	}

	return nil
}
