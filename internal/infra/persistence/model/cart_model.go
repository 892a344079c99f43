package model

import (
	"slices"
	"time"

	"campuscart/internal/domain/entity"
	"campuscart/internal/domain/pricing"
)

// CartRecord mirrors the cart slot. The totals are written for readers of the
// raw slot; rehydration recomputes them from the lines.
type CartRecord struct {
	Items      []CartLineRecord `json:"items"`
	Subtotal   float64          `json:"subtotal"`
	TaxRate    *float64         `json:"taxRate"`
	Tax        float64          `json:"tax"`
	Discount   float64          `json:"discount"`
	FinalTotal float64          `json:"finalTotal"`
	Timestamp  int64            `json:"timestamp"`
}

// CartLineRecord is a snapshot of an item plus the quantity in the cart.
type CartLineRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	Description    string    `json:"description,omitempty"`
	SellerID       string    `json:"sellerId,omitempty"`
	SellerName     string    `json:"sellerName,omitempty"`
	Images         []string  `json:"images,omitempty"`
	WhatsAppQRCode string    `json:"whatsappQrCode,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Quantity       int       `json:"quantity"`
}

// FromCart serializes a cart stamped with the save time.
func FromCart(cart *entity.Cart, savedAt time.Time) CartRecord {
	lines := cart.Lines()
	rate := cart.TaxRate()
	rec := CartRecord{
		Items:      make([]CartLineRecord, 0, len(lines)),
		Subtotal:   cart.Subtotal(),
		TaxRate:    &rate,
		Tax:        cart.Tax(),
		Discount:   cart.Discount(),
		FinalTotal: cart.FinalTotal(),
		Timestamp:  savedAt.UnixMilli(),
	}
	for _, line := range lines {
		rec.Items = append(rec.Items, FromCartLine(line))
	}

	return rec
}

// FromCartLine serializes one cart line.
func FromCartLine(line entity.CartLine) CartLineRecord {
	return CartLineRecord{
		ID:             line.Item.ID,
		Name:           line.Item.Name,
		Category:       line.Item.Category.String(),
		Price:          line.Item.Price,
		Description:    line.Item.Description,
		SellerID:       line.Item.SellerID,
		SellerName:     line.Item.SellerName,
		Images:         slices.Clone(line.Item.Images),
		WhatsAppQRCode: line.Item.WhatsAppQRCode,
		CreatedAt:      line.Item.CreatedAt,
		Quantity:       line.Quantity,
	}
}

// ToDomain converts the record back into a cart line.
func (r CartLineRecord) ToDomain() entity.CartLine {
	return entity.CartLine{
		Item: entity.ItemSnapshot{
			ID:             r.ID,
			Name:           r.Name,
			Category:       entity.Category(r.Category),
			Price:          r.Price,
			Description:    r.Description,
			SellerID:       r.SellerID,
			SellerName:     r.SellerName,
			Images:         slices.Clone(r.Images),
			WhatsAppQRCode: r.WhatsAppQRCode,
			CreatedAt:      r.CreatedAt,
		},
		Quantity: r.Quantity,
	}
}

// ToDomain rehydrates the cart. Records without a stored tax rate use the
// default rate; a stored zero stays zero.
func (r CartRecord) ToDomain() *entity.Cart {
	rate := pricing.DefaultTaxRate
	if r.TaxRate != nil {
		rate = *r.TaxRate
	}

	lines := make([]entity.CartLine, 0, len(r.Items))
	for _, rec := range r.Items {
		lines = append(lines, rec.ToDomain())
	}

	return entity.RestoreCart(entity.CartState{
		Lines:    lines,
		TaxRate:  rate,
		Discount: r.Discount,
	})
}

// OrderRecord is the serializable form of a checkout result.
type OrderRecord struct {
	ID           string           `json:"id"`
	Items        []CartLineRecord `json:"items"`
	Total        float64          `json:"total"`
	Summary      SummaryRecord    `json:"summary"`
	CheckoutDate time.Time        `json:"checkoutDate"`
}

// SummaryRecord is the serializable form of a cart summary.
type SummaryRecord struct {
	Subtotal            float64 `json:"subtotal"`
	Tax                 float64 `json:"tax"`
	Discount            float64 `json:"discount"`
	FinalTotal          float64 `json:"finalTotal"`
	ItemCount           int     `json:"itemCount"`
	UniqueItems         int     `json:"uniqueItems"`
	FormattedSubtotal   string  `json:"formattedSubtotal"`
	FormattedTax        string  `json:"formattedTax"`
	FormattedDiscount   string  `json:"formattedDiscount"`
	FormattedFinalTotal string  `json:"formattedFinalTotal"`
}

// FromSummary serializes cart totals.
func FromSummary(summary entity.CartSummary) SummaryRecord {
	return SummaryRecord{
		Subtotal:            summary.Subtotal,
		Tax:                 summary.Tax,
		Discount:            summary.Discount,
		FinalTotal:          summary.FinalTotal,
		ItemCount:           summary.ItemCount,
		UniqueItems:         summary.UniqueItems,
		FormattedSubtotal:   summary.FormattedSubtotal,
		FormattedTax:        summary.FormattedTax,
		FormattedDiscount:   summary.FormattedDiscount,
		FormattedFinalTotal: summary.FormattedFinalTotal,
	}
}

// FromOrder serializes a checkout result.
func FromOrder(order *entity.Order) OrderRecord {
	rec := OrderRecord{
		ID:           order.ID,
		Items:        make([]CartLineRecord, 0, len(order.Lines)),
		Total:        order.Total,
		CheckoutDate: order.CheckoutDate,
		Summary:      FromSummary(order.Summary),
	}
	for _, line := range order.Lines {
		rec.Items = append(rec.Items, FromCartLine(line))
	}

	return rec
}
