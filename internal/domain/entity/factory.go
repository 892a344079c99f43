package entity

import (
	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/validation"
)

// Factory creates new people and items. It owns the id generator and clock
// so that construction never touches package-level state.
type Factory struct {
	ids   IDGenerator
	clock Clock
	files validation.FilePolicy
}

// NewFactory wires a factory. A nil clock means time.Now.
func NewFactory(ids IDGenerator, clock Clock, files validation.FilePolicy) *Factory {
	return &Factory{
		ids:   ids,
		clock: clock,
		files: files,
	}
}

// IDs exposes the factory's generator for other identifiers such as orders.
func (f *Factory) IDs() IDGenerator {
	return f.ids
}

// CreatePerson validates in and returns the variant selected by in.Role.
// A fresh id is drawn only when in.ID is empty and validation succeeded.
func (f *Factory) CreatePerson(in PersonInput) (*Person, error) {
	person, err := newPerson(in, in.ID, f.clock.Now())
	if err != nil {
		return nil, err
	}
	if person.ID == "" {
		person.ID = f.ids.Next(UserIDPrefix)
	}

	return person, nil
}

// CreateItem validates in and returns a new item with a fresh id.
func (f *Factory) CreateItem(in ItemInput) (*Item, error) {
	if err := validation.Price(in.Price); err != nil {
		return nil, err
	}
	if in.File != nil {
		if err := f.files.File(in.File.MIMEType, in.File.Size, in.File.Content); err != nil {
			return nil, err
		}
	}

	item := &Item{
		ID:             f.ids.Next(ItemIDPrefix),
		Name:           in.Name,
		Category:       in.Category,
		Price:          in.Price,
		Quantity:       in.Quantity,
		Description:    in.Description,
		SellerID:       in.SellerID,
		SellerName:     in.SellerName,
		CreatedAt:      f.clock.Now(),
		WhatsAppQRCode: in.QRCode,
		File:           in.File,
	}
	item.refreshStock()

	return item, nil
}

// CloneItem copies item under a fresh id and creation time. Images are not
// carried over.
func (f *Factory) CloneItem(item *Item) (*Item, error) {
	return f.CreateItem(ItemInput{
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.Price,
		Quantity:    item.Quantity,
		File:        item.File,
		Description: item.Description,
		SellerID:    item.SellerID,
		SellerName:  item.SellerName,
		QRCode:      item.WhatsAppQRCode,
	})
}

func validationRequired(field string) error {
	return domainerrors.Validation(field, "required")
}
