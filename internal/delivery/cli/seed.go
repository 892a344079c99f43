package cli

import (
	"context"
	"log/slog"

	"campuscart/internal/domain/entity"
	"campuscart/internal/usecase"

	"github.com/pkg/errors"
)

// demoUsers are signed in in this order, so a fresh store numbers them user_1..user_4.
var demoUsers = []usecase.SignInInput{
	{Name: "Admin User", Email: "admin@campuscart.com", Role: entity.RoleAdmin, Phone: "9876543210"},
	{Name: "John Doe", Email: "john@campuscart.com", Role: entity.RoleSeller, Phone: "9876543211", WhatsApp: "9876543211"},
	{Name: "Jane Smith", Email: "jane@campuscart.com", Role: entity.RoleBuyer, Phone: "9876543212"},
	{Name: "Mike Johnson", Email: "mike@campuscart.com", Role: entity.RoleSeller, Phone: "9876543213", WhatsApp: "9876543213"},
}

type demoItem struct {
	seller int // index into demoUsers
	input  usecase.ListItemInput
}

var demoItems = []demoItem{
	{seller: 1, input: usecase.ListItemInput{Name: "Data Structures Textbook", Category: entity.CategoryEducation, Price: 250, Quantity: 2, Description: "Complete guide to data structures and algorithms"}},
	{seller: 1, input: usecase.ListItemInput{Name: "Hostel Bucket", Category: entity.CategoryHostel, Price: 150, Quantity: 5, Description: "New plastic bucket for hostel use"}},
	{seller: 1, input: usecase.ListItemInput{Name: "Scientific Calculator", Category: entity.CategoryElectronics, Price: 800, Quantity: 1, Description: "Casio scientific calculator, barely used"}},
	{seller: 1, input: usecase.ListItemInput{Name: "Previous Year Papers", Category: entity.CategoryFree, Price: 0, Quantity: 10, Description: "Computer Science previous year question papers"}},
	{seller: 3, input: usecase.ListItemInput{Name: "Lab Manual", Category: entity.CategoryEducation, Price: 100, Quantity: 3, Description: "Complete lab manual for Computer Science"}},
	{seller: 3, input: usecase.ListItemInput{Name: "Bed Sheet Set", Category: entity.CategoryHostel, Price: 300, Quantity: 2, Description: "Cotton bed sheet set, hostel size"}},
	{seller: 3, input: usecase.ListItemInput{Name: "Phone Charger", Category: entity.CategoryElectronics, Price: 200, Quantity: 4, Description: "Fast charging USB-C charger"}},
}

// demoCart lists indexes into demoItems added to the cart once each.
var demoCart = []int{0, 2}

// SeedView reports what Seed created.
type SeedView struct {
	Users   int  `json:"users"`
	Items   int  `json:"items"`
	Skipped bool `json:"skipped"`
}

// Seed loads the demo users, listings and cart. A store that already has
// listings is left alone.
func (h *Handler) Seed(ctx context.Context) (Response, error) {
	existing, err := h.listings.Browse(ctx, usecase.BrowseFilter{})
	if err != nil {
		return Response{}, err
	}
	if len(existing) > 0 {
		h.logger.Info("Store already has listings, skipping seed", slog.Int("items", len(existing)))

		return Success(SeedView{Skipped: true}, "Already seeded"), nil
	}

	people := make([]*entity.Person, 0, len(demoUsers))
	for _, input := range demoUsers {
		result, err := h.sessions.SignIn(ctx, &input)
		if err != nil {
			return Response{}, errors.Wrapf(err, "seed user %s", input.Email)
		}
		if !result.Accepted() {
			return Response{}, errors.Wrapf(result.Err(), "seed user %s", input.Email)
		}
		h.metrics.LoginsTotal.WithLabelValues(string(result.Status)).Inc()
		people = append(people, result.User)
	}

	items := make([]*entity.Item, 0, len(demoItems))
	for _, demo := range demoItems {
		item, err := h.listings.ListItem(ctx, people[demo.seller], &demo.input)
		if err != nil {
			return Response{}, errors.Wrapf(err, "seed item %s", demo.input.Name)
		}
		h.metrics.ListingsTotal.Inc()
		items = append(items, item)
	}

	for _, idx := range demoCart {
		if _, err := h.carts.AddItem(ctx, items[idx], 1); err != nil {
			return Response{}, errors.Wrap(err, "seed cart")
		}
		h.metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	}

	if err := h.sessions.Logout(ctx); err != nil {
		return Response{}, err
	}
	h.logger.Info("Seeded demo data", slog.Int("users", len(people)), slog.Int("items", len(items)))

	return Success(SeedView{Users: len(people), Items: len(items)}, "Demo data loaded"), nil
}
