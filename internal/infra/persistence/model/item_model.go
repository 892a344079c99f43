package model

import (
	"slices"
	"time"

	"campuscart/internal/domain/entity"
)

// ItemRecord mirrors one listing in the listed-items slot and inside seller records.
type ItemRecord struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Price          float64           `json:"price"`
	Quantity       int               `json:"quantity"`
	Description    string            `json:"description"`
	SellerID       string            `json:"sellerId,omitempty"`
	SellerName     string            `json:"sellerName,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	IsOutOfStock   bool              `json:"isOutOfStock"`
	Images         []string          `json:"images"`
	WhatsAppQRCode string            `json:"whatsappQrCode,omitempty"`
	File           *AttachmentRecord `json:"file,omitempty"`
}

// AttachmentRecord stores attachment metadata. Content bytes are not persisted.
type AttachmentRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// FromItem serializes an item.
func FromItem(item *entity.Item) ItemRecord {
	rec := ItemRecord{
		ID:             item.ID,
		Name:           item.Name,
		Category:       item.Category.String(),
		Price:          item.Price,
		Quantity:       item.Quantity,
		Description:    item.Description,
		SellerID:       item.SellerID,
		SellerName:     item.SellerName,
		CreatedAt:      item.CreatedAt,
		IsOutOfStock:   item.IsOutOfStock,
		Images:         slices.Clone(item.Images),
		WhatsAppQRCode: item.WhatsAppQRCode,
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}
	if item.File != nil {
		rec.File = &AttachmentRecord{
			Name: item.File.Name,
			Type: item.File.MIMEType,
			Size: item.File.Size,
		}
	}

	return rec
}

// ToDomain rehydrates the item; the stored isOutOfStock is recomputed from quantity.
func (r ItemRecord) ToDomain() (*entity.Item, error) {
	state := entity.ItemState{
		ID:             r.ID,
		Name:           r.Name,
		Category:       entity.Category(r.Category),
		Price:          r.Price,
		Quantity:       r.Quantity,
		Description:    r.Description,
		SellerID:       r.SellerID,
		SellerName:     r.SellerName,
		CreatedAt:      r.CreatedAt,
		Images:         r.Images,
		WhatsAppQRCode: r.WhatsAppQRCode,
	}
	if r.File != nil {
		state.File = &entity.Attachment{
			Name:     r.File.Name,
			MIMEType: r.File.Type,
			Size:     r.File.Size,
		}
	}

	return entity.RestoreItem(state)
}
