// Package cli is the command-line delivery: it turns parsed commands into
// usecase calls, records metrics and renders the outcome as a Response.
package cli

import (
	"context"
	"log/slog"

	"campuscart/internal/domain/entity"
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/infra/metrics"
	"campuscart/internal/infra/persistence/model"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// HandlerParams defines the dependencies of Handler
type HandlerParams struct {
	fx.In

	Sessions   usecase.SessionUsecase
	Moderation usecase.ModerationUsecase
	Carts      usecase.CartUsecase
	Listings   usecase.ListingUsecase
	Dashboard  usecase.DashboardUsecase
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// Handler runs one command against the usecases.
type Handler struct {
	sessions   usecase.SessionUsecase
	moderation usecase.ModerationUsecase
	carts      usecase.CartUsecase
	listings   usecase.ListingUsecase
	dashboard  usecase.DashboardUsecase
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewHandler creates a new command handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		sessions:   params.Sessions,
		moderation: params.Moderation,
		carts:      params.Carts,
		listings:   params.Listings,
		dashboard:  params.Dashboard,
		metrics:    params.Metrics,
		logger:     params.Logger,
	}
}

// SummaryView is the state overview printed by the summary command.
type SummaryView struct {
	CurrentUser *model.PersonRecord `json:"currentUser"`
	Cart        model.SummaryRecord `json:"cart"`
	Analytics   AnalyticsView       `json:"analytics"`
}

// AnalyticsView is the serializable admin dashboard.
type AnalyticsView struct {
	Users          usecase.UserCounts      `json:"users"`
	Inventory      usecase.InventoryCounts `json:"inventory"`
	Categories     []usecase.CategoryCount `json:"categories"`
	Sellers        []usecase.SellerStats   `json:"sellers"`
	RecentActivity []model.ActivityRecord  `json:"recentActivity"`
}

// LoginView is the outcome of a login.
type LoginView struct {
	Status usecase.LoginStatus `json:"status"`
	User   *model.PersonRecord `json:"user,omitempty"`
	Reason string              `json:"reason,omitempty"`
}

// Login signs in with input.
func (h *Handler) Login(ctx context.Context, input *usecase.SignInInput) (Response, error) {
	result, err := h.sessions.SignIn(ctx, input)
	if err != nil {
		return Response{}, err
	}
	h.metrics.LoginsTotal.WithLabelValues(string(result.Status)).Inc()

	if !result.Accepted() {
		return Response{}, result.Err()
	}

	user := model.FromPerson(result.User)

	return Success(LoginView{Status: result.Status, User: &user}, "Logged in"), nil
}

// Logout ends the session.
func (h *Handler) Logout(ctx context.Context) (Response, error) {
	if err := h.sessions.Logout(ctx); err != nil {
		return Response{}, err
	}

	return Success(nil, "Logged out"), nil
}

// Browse lists items matching filter.
func (h *Handler) Browse(ctx context.Context, filter usecase.BrowseFilter) (Response, error) {
	items, err := h.listings.Browse(ctx, filter)
	if err != nil {
		return Response{}, err
	}

	records := make([]model.ItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, model.FromItem(item))
	}

	return Success(records, ""), nil
}

// ListItem lists a new item as the logged-in seller.
func (h *Handler) ListItem(ctx context.Context, input *usecase.ListItemInput) (Response, error) {
	seller, err := h.requireUser(ctx)
	if err != nil {
		return Response{}, err
	}

	item, err := h.listings.ListItem(ctx, seller, input)
	if err != nil {
		return Response{}, err
	}
	h.metrics.ListingsTotal.Inc()

	return Success(model.FromItem(item), "Item listed"), nil
}

// Relist copies one of the logged-in seller's listings.
func (h *Handler) Relist(ctx context.Context, itemID string) (Response, error) {
	owner, err := h.requireUser(ctx)
	if err != nil {
		return Response{}, err
	}

	item, err := h.listings.Relist(ctx, owner, itemID)
	if err != nil {
		return Response{}, err
	}
	h.metrics.ListingsTotal.Inc()

	return Success(model.FromItem(item), "Item relisted"), nil
}

// UpdateStock changes the quantity of a listing.
func (h *Handler) UpdateStock(ctx context.Context, itemID string, update entity.QuantityUpdate) (Response, error) {
	item, err := h.listings.UpdateQuantity(ctx, itemID, update)
	if err != nil {
		return Response{}, err
	}

	return Success(model.FromItem(item), "Stock updated"), nil
}

// AddToCart adds quantity of a listed item to the cart.
func (h *Handler) AddToCart(ctx context.Context, itemID string, quantity int) (Response, error) {
	item, err := h.listings.GetItem(ctx, itemID)
	if err != nil {
		return Response{}, err
	}

	summary, err := h.carts.AddItem(ctx, item, quantity)

	return h.cartResult("add", summary, err)
}

// RemoveFromCart drops a line from the cart.
func (h *Handler) RemoveFromCart(ctx context.Context, itemID string) (Response, error) {
	summary, err := h.carts.RemoveItem(ctx, itemID)

	return h.cartResult("remove", summary, err)
}

// SetCartQuantity changes the quantity of a cart line.
func (h *Handler) SetCartQuantity(ctx context.Context, itemID string, quantity int) (Response, error) {
	summary, err := h.carts.SetQuantity(ctx, itemID, quantity)

	return h.cartResult("set_quantity", summary, err)
}

// ApplyDiscount fixes a percentage discount, or removes it when remove is set.
func (h *Handler) ApplyDiscount(ctx context.Context, percent float64, remove bool) (Response, error) {
	if remove {
		summary, err := h.carts.RemoveDiscount(ctx)

		return h.cartResult("remove_discount", summary, err)
	}

	summary, err := h.carts.ApplyDiscountPercent(ctx, percent)

	return h.cartResult("discount", summary, err)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(ctx context.Context) (Response, error) {
	if err := h.carts.Clear(ctx); err != nil {
		return Response{}, err
	}
	h.metrics.CartMutationsTotal.WithLabelValues("clear").Inc()

	return Success(nil, "Cart cleared"), nil
}

func (h *Handler) cartResult(op string, summary *entity.CartSummary, err error) (Response, error) {
	if err != nil {
		return Response{}, err
	}
	h.metrics.CartMutationsTotal.WithLabelValues(op).Inc()

	return Success(model.FromSummary(*summary), "Cart updated"), nil
}

// Checkout places the order.
func (h *Handler) Checkout(ctx context.Context) (Response, error) {
	order, err := h.carts.Checkout(ctx)
	if err != nil {
		return Response{}, err
	}
	h.metrics.CheckoutsTotal.Inc()
	h.metrics.CheckoutRevenueTotal.Add(order.Total)

	return Success(model.FromOrder(order), "Order placed"), nil
}

// Block blocks targetID as the logged-in admin.
func (h *Handler) Block(ctx context.Context, targetID, reason string) (Response, error) {
	admin, err := h.requireUser(ctx)
	if err != nil {
		return Response{}, err
	}
	if err := h.moderation.BlockPerson(ctx, admin, targetID, reason); err != nil {
		return Response{}, err
	}
	h.metrics.ModerationActionsTotal.WithLabelValues("block").Inc()

	return Success(nil, "User blocked"), nil
}

// Unblock lifts a block as the logged-in admin.
func (h *Handler) Unblock(ctx context.Context, targetID string) (Response, error) {
	admin, err := h.requireUser(ctx)
	if err != nil {
		return Response{}, err
	}
	if err := h.moderation.UnblockPerson(ctx, admin, targetID); err != nil {
		return Response{}, err
	}
	h.metrics.ModerationActionsTotal.WithLabelValues("unblock").Inc()

	return Success(nil, "User unblocked"), nil
}

// DeleteListing removes a listing as the logged-in admin.
func (h *Handler) DeleteListing(ctx context.Context, itemID string) (Response, error) {
	admin, err := h.requireUser(ctx)
	if err != nil {
		return Response{}, err
	}
	if err := h.moderation.DeleteListing(ctx, admin, itemID); err != nil {
		return Response{}, err
	}
	h.metrics.ModerationActionsTotal.WithLabelValues("delete_listing").Inc()

	return Success(nil, "Listing deleted"), nil
}

// Summary reports the session, the cart and the dashboard.
func (h *Handler) Summary(ctx context.Context) (Response, error) {
	view := SummaryView{}

	current, err := h.sessions.CurrentUser(ctx)
	if err != nil {
		return Response{}, err
	}
	if current != nil {
		rec := model.FromPerson(current)
		view.CurrentUser = &rec
	}

	cart, err := h.carts.Summary(ctx)
	if err != nil {
		return Response{}, err
	}
	view.Cart = model.FromSummary(*cart)

	analytics, err := h.dashboard.Analytics(ctx)
	if err != nil {
		return Response{}, err
	}
	view.Analytics = newAnalyticsView(analytics)

	return Success(view, ""), nil
}

func newAnalyticsView(a *usecase.Analytics) AnalyticsView {
	view := AnalyticsView{
		Users:          a.Users,
		Inventory:      a.Inventory,
		Categories:     a.Categories,
		Sellers:        a.Sellers,
		RecentActivity: make([]model.ActivityRecord, 0, len(a.RecentActivity)),
	}
	for _, entry := range a.RecentActivity {
		view.RecentActivity = append(view.RecentActivity, model.FromActivity(entry))
	}

	return view
}

func (h *Handler) requireUser(ctx context.Context) (*entity.Person, error) {
	current, err := h.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "log in first")
	}

	return current, nil
}
