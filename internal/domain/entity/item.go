package entity

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"campuscart/internal/domain/pricing"
	"campuscart/internal/domain/validation"
)

// Category groups listings on the browse page.
type Category string

const (
	CategoryEducation   Category = "Education"
	CategoryHostel      Category = "Hostel"
	CategoryElectronics Category = "Electronics"
	CategoryFree        Category = "Free"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryEducation, CategoryHostel, CategoryElectronics, CategoryFree}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// Attachment is a document or image uploaded with a listing.
type Attachment struct {
	Name     string
	MIMEType string
	Size     int64
	Content  []byte // Optional raw bytes; sniffed at construction when present.
}

// Item is a listing offered by a seller.
type Item struct {
	ID             string
	Name           string
	Category       Category
	Price          float64
	Quantity       int
	Description    string
	SellerID       string
	SellerName     string
	CreatedAt      time.Time
	IsOutOfStock   bool // Always quantity <= 0 after a quantity change.
	Images         []string
	WhatsAppQRCode string
	File           *Attachment
}

// ItemSummary is the compact view of a listing.
type ItemSummary struct {
	ID          string
	Name        string
	Category    Category
	Price       float64
	Quantity    int
	IsAvailable bool
	HasFile     bool
	ImageCount  int
}

// QuantityUpdate is one of Increment, SetTo or SetFromText.
type QuantityUpdate struct {
	mode quantityMode
	n    int
	text string
}

type quantityMode int

const (
	quantityIncrement quantityMode = iota
	quantitySet
	quantityFromText
)

// Increment adds one to the current quantity.
func Increment() QuantityUpdate {
	return QuantityUpdate{mode: quantityIncrement}
}

// SetTo sets the quantity to exactly n.
func SetTo(n int) QuantityUpdate {
	return QuantityUpdate{mode: quantitySet, n: n}
}

// SetFromText parses the leading integer of s; anything unparsable becomes 0.
func SetFromText(s string) QuantityUpdate {
	return QuantityUpdate{mode: quantityFromText, text: s}
}

// UpdateQuantity applies update and recomputes IsOutOfStock.
func (i *Item) UpdateQuantity(update QuantityUpdate) {
	switch update.mode {
	case quantityIncrement:
		i.Quantity++
	case quantitySet:
		i.Quantity = update.n
	case quantityFromText:
		i.Quantity = parseLeadingInt(update.text)
	}

	i.refreshStock()
}

func (i *Item) refreshStock() {
	i.IsOutOfStock = i.Quantity <= 0
}

// parseLeadingInt reads an optional sign and the digits that follow leading
// whitespace, ignoring whatever comes after them.
func parseLeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}

	return n
}

// AddImage appends url when it is an absolute URL and reports whether it was added.
func (i *Item) AddImage(url string) bool {
	if !validation.ImageURL(url) {
		return false
	}
	i.Images = append(i.Images, url)

	return true
}

// RemoveImage drops every occurrence of url.
func (i *Item) RemoveImage(url string) {
	i.Images = slices.DeleteFunc(i.Images, func(img string) bool {
		return img == url
	})
}

// IsAvailable reports whether the item can be bought right now.
func (i *Item) IsAvailable() bool {
	return !i.IsOutOfStock && i.Quantity > 0
}

// FormattedPrice renders the price with the currency symbol.
func (i *Item) FormattedPrice() string {
	return pricing.FormatCurrency(i.Price)
}

// Summary returns the compact view of the item.
func (i *Item) Summary() ItemSummary {
	return ItemSummary{
		ID:          i.ID,
		Name:        i.Name,
		Category:    i.Category,
		Price:       i.Price,
		Quantity:    i.Quantity,
		IsAvailable: i.IsAvailable(),
		HasFile:     i.File != nil,
		ImageCount:  len(i.Images),
	}
}

// Snapshot copies the item data a cart keeps at add time.
func (i *Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		ID:             i.ID,
		Name:           i.Name,
		Category:       i.Category,
		Price:          i.Price,
		Description:    i.Description,
		SellerID:       i.SellerID,
		SellerName:     i.SellerName,
		Images:         slices.Clone(i.Images),
		WhatsAppQRCode: i.WhatsAppQRCode,
		CreatedAt:      i.CreatedAt,
	}
}

// ItemInput carries the fields needed to create an item.
type ItemInput struct {
	Name        string
	Category    Category
	Price       float64
	Quantity    int
	File        *Attachment
	Description string
	SellerID    string
	SellerName  string
	QRCode      string
}

// ItemState is everything needed to rebuild an item from storage.
type ItemState struct {
	ID             string
	Name           string
	Category       Category
	Price          float64
	Quantity       int
	Description    string
	SellerID       string
	SellerName     string
	CreatedAt      time.Time
	Images         []string
	WhatsAppQRCode string
	File           *Attachment
}

// RestoreItem rebuilds a stored item, keeping its id and recomputing the
// stock flag from the stored quantity.
func RestoreItem(state ItemState) (*Item, error) {
	if state.ID == "" {
		return nil, validationRequired("id")
	}
	if err := validation.Price(state.Price); err != nil {
		return nil, err
	}

	item := &Item{
		ID:             state.ID,
		Name:           state.Name,
		Category:       state.Category,
		Price:          state.Price,
		Quantity:       state.Quantity,
		Description:    state.Description,
		SellerID:       state.SellerID,
		SellerName:     state.SellerName,
		CreatedAt:      state.CreatedAt,
		Images:         slices.Clone(state.Images),
		WhatsAppQRCode: state.WhatsAppQRCode,
		File:           state.File,
	}
	item.refreshStock()

	return item, nil
}
