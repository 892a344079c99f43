// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/domain/validation"
)

// Person is anyone with an account: a buyer, a seller or an admin.
// The variant is fixed by the role chosen at construction; role-specific data
// hangs off a profile pointer that is nil for the other variants.
type Person struct {
	ID              string         // Stable identifier, generated once and never reused.
	Name            string         // Display name.
	Email           string         // Contact email in local@domain.tld form.
	Phone           string         // Optional, exactly ten digits when set.
	WhatsApp        string         // Optional, at least ten characters when set.
	CreatedAt       time.Time      // Set once at construction.
	IsBlocked       bool           // True while an admin block is in effect.
	BlockReason     *string        // Reason given for the current block, nil when not blocked.
	DiscussionPosts []PostRef      // Posts authored by this person, in posting order.
	Seller          *SellerProfile // Non-nil iff the role can sell: sellers and admins.

	role Role
}

// SellerProfile holds the listings of a person whose role can sell.
type SellerProfile struct {
	Items []*Item // Owned listings in listing order; every SellerID equals the owner's ID.
}

// PostRef references a discussion post authored by a person.
type PostRef struct {
	ID    string
	Title string
}

// PersonSummary is the compact view used by the admin user list.
type PersonSummary struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	IsBlocked bool
	ItemCount int
	PostCount int
	CreatedAt time.Time
}

// ListingStats counts a person's listings and posts.
type ListingStats struct {
	TotalItems      int
	ActiveItems     int
	OutOfStockItems int
	TotalPosts      int
}

// Role returns the immutable role chosen at construction.
func (p *Person) Role() Role {
	return p.role
}

// IsBuyer reports whether p is the buyer variant.
func (p *Person) IsBuyer() bool { return p.role == RoleBuyer }

// IsSeller reports whether p is the seller variant.
func (p *Person) IsSeller() bool { return p.role == RoleSeller }

// IsAdmin reports whether p is the admin variant.
func (p *Person) IsAdmin() bool { return p.role == RoleAdmin }

// Block marks the person as blocked. Blocking an already blocked person
// replaces the reason.
func (p *Person) Block(reason string) {
	p.IsBlocked = true
	p.BlockReason = &reason
}

// Unblock clears any block.
func (p *Person) Unblock() {
	p.IsBlocked = false
	p.BlockReason = nil
}

// CanSell reports whether the role allows listing items and no block is in effect.
func (p *Person) CanSell() bool {
	return p.role.Capabilities().Sell && !p.IsBlocked
}

// CanModerate reports whether the person may block users and delete listings.
func (p *Person) CanModerate() bool {
	return p.role.Capabilities().Moderate && !p.IsBlocked
}

// CanPostDiscussion reports whether the person may post, regardless of role.
func (p *Person) CanPostDiscussion() bool {
	return !p.IsBlocked
}

// AddDiscussionPost appends a post reference.
func (p *Person) AddDiscussionPost(post PostRef) {
	p.DiscussionPosts = append(p.DiscussionPosts, post)
}

// RemoveDiscussionPost drops every reference to postID.
func (p *Person) RemoveDiscussionPost(postID string) {
	p.DiscussionPosts = slices.DeleteFunc(p.DiscussionPosts, func(post PostRef) bool {
		return post.ID == postID
	})
}

// Listings returns the owned items, or nil for buyers.
func (p *Person) Listings() []*Item {
	if p.Seller == nil {
		return nil
	}

	return p.Seller.Items
}

// AddListing takes ownership of item and appends it to the person's listings.
func (p *Person) AddListing(item *Item) error {
	if p.Seller == nil {
		return domainerrors.ErrForbidden.WithDetails("only sellers and admins own listings")
	}
	if item == nil {
		return domainerrors.Validation("item", "required")
	}

	item.SellerID = p.ID
	p.Seller.Items = append(p.Seller.Items, item)

	return nil
}

// RemoveListing drops the listing with itemID. Missing ids are ignored.
func (p *Person) RemoveListing(itemID string) {
	if p.Seller == nil {
		return
	}

	p.Seller.Items = slices.DeleteFunc(p.Seller.Items, func(item *Item) bool {
		return item.ID == itemID
	})
}

// Summary returns the compact admin view of the person.
func (p *Person) Summary() PersonSummary {
	return PersonSummary{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.role,
		IsBlocked: p.IsBlocked,
		ItemCount: len(p.Listings()),
		PostCount: len(p.DiscussionPosts),
		CreatedAt: p.CreatedAt,
	}
}

// Stats counts listings by availability plus authored posts.
func (p *Person) Stats() ListingStats {
	stats := ListingStats{TotalPosts: len(p.DiscussionPosts)}
	for _, item := range p.Listings() {
		stats.TotalItems++
		if item.IsAvailable() {
			stats.ActiveItems++
		}
		if item.IsOutOfStock {
			stats.OutOfStockItems++
		}
	}

	return stats
}

// ContactUpdate selects which contact fields UpdateContact replaces.
type ContactUpdate struct {
	phone       string
	whatsapp    string
	setPhone    bool
	setWhatsApp bool
}

// PhoneOnly replaces the phone number.
func PhoneOnly(phone string) ContactUpdate {
	return ContactUpdate{phone: phone, setPhone: true}
}

// WhatsAppOnly replaces the WhatsApp contact.
func WhatsAppOnly(whatsapp string) ContactUpdate {
	return ContactUpdate{whatsapp: whatsapp, setWhatsApp: true}
}

// PhoneAndWhatsApp replaces both contact fields.
func PhoneAndWhatsApp(phone, whatsapp string) ContactUpdate {
	return ContactUpdate{phone: phone, whatsapp: whatsapp, setPhone: true, setWhatsApp: true}
}

// UpdateContact validates every selected field before changing any of them.
func (p *Person) UpdateContact(update ContactUpdate) error {
	if update.setPhone {
		if err := requireContact("phone", update.phone, validation.Phone); err != nil {
			return err
		}
	}
	if update.setWhatsApp {
		if err := requireContact("whatsapp", update.whatsapp, validation.WhatsApp); err != nil {
			return err
		}
	}

	if update.setPhone {
		p.Phone = update.phone
	}
	if update.setWhatsApp {
		p.WhatsApp = update.whatsapp
	}

	return nil
}

func requireContact(field, value string, check func(string) error) error {
	if value == "" {
		return domainerrors.Validation(field, "required")
	}

	return check(value)
}

// PersonInput carries the fields needed to create a person. ID is optional.
type PersonInput struct {
	Name     string
	Email    string
	Role     Role
	Phone    string
	WhatsApp string
	ID       string
}

// PersonState is everything needed to rebuild a person from storage.
type PersonState struct {
	ID              string
	Name            string
	Email           string
	Role            Role
	Phone           string
	WhatsApp        string
	CreatedAt       time.Time
	IsBlocked       bool
	BlockReason     *string
	DiscussionPosts []PostRef
	Items           []*Item
}

// State captures everything RestorePerson needs to rebuild p.
func (p *Person) State() PersonState {
	return PersonState{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.role,
		Phone:           p.Phone,
		WhatsApp:        p.WhatsApp,
		CreatedAt:       p.CreatedAt,
		IsBlocked:       p.IsBlocked,
		BlockReason:     p.BlockReason,
		DiscussionPosts: slices.Clone(p.DiscussionPosts),
		Items:           slices.Clone(p.Listings()),
	}
}

// RestorePerson rebuilds the variant selected by state.Role. The stored id,
// timestamps, moderation flags and posts are kept; listings are re-owned so
// every item points back at the restored person.
func RestorePerson(state PersonState) (*Person, error) {
	if state.ID == "" {
		return nil, validationRequired("id")
	}

	person, err := newPerson(PersonInput{
		Name:     state.Name,
		Email:    state.Email,
		Role:     state.Role,
		Phone:    state.Phone,
		WhatsApp: state.WhatsApp,
	}, state.ID, state.CreatedAt)
	if err != nil {
		return nil, err
	}

	person.IsBlocked = state.IsBlocked
	if state.IsBlocked && state.BlockReason != nil {
		reason := *state.BlockReason
		person.BlockReason = &reason
	}
	person.DiscussionPosts = slices.Clone(state.DiscussionPosts)

	if person.Seller != nil {
		for _, item := range state.Items {
			if err := person.AddListing(item); err != nil {
				return nil, err
			}
		}
	}

	return person, nil
}

func newPerson(in PersonInput, id string, createdAt time.Time) (*Person, error) {
	if err := validation.Role(in.Role.String()); err != nil {
		return nil, err
	}
	if err := validation.Email(in.Email); err != nil {
		return nil, err
	}
	if err := validation.Phone(in.Phone); err != nil {
		return nil, err
	}
	if err := validation.WhatsApp(in.WhatsApp); err != nil {
		return nil, err
	}

	person := &Person{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		WhatsApp:  in.WhatsApp,
		CreatedAt: createdAt,
		role:      in.Role,
	}
	if in.Role.Capabilities().Sell {
		person.Seller = &SellerProfile{}
	}

	return person, nil
}
