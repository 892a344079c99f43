// Package model holds the JSON records stored in the key-value slots and the
// conversions between records and domain entities. Records never leave this
// layer as entities without passing through ToDomain.
package model

import (
	"time"

	"campuscart/internal/domain/entity"
)

// PersonRecord mirrors one person as stored in the current-user and
// known-users slots. Items is only populated for sellers.
type PersonRecord struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            string          `json:"role"`
	Phone           string          `json:"phone,omitempty"`
	WhatsApp        string          `json:"whatsapp,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	IsBlocked       bool            `json:"isBlocked"`
	BlockReason     *string         `json:"blockReason"`
	DiscussionPosts []PostRefRecord `json:"discussionPosts"`
	Items           []ItemRecord    `json:"items,omitempty"`
}

// PostRefRecord mirrors a discussion post reference.
type PostRefRecord struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// FromPerson serializes a person, including seller listings and posts.
func FromPerson(p *entity.Person) PersonRecord {
	rec := PersonRecord{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.Role().String(),
		Phone:           p.Phone,
		WhatsApp:        p.WhatsApp,
		CreatedAt:       p.CreatedAt,
		IsBlocked:       p.IsBlocked,
		BlockReason:     p.BlockReason,
		DiscussionPosts: make([]PostRefRecord, 0, len(p.DiscussionPosts)),
	}
	for _, post := range p.DiscussionPosts {
		rec.DiscussionPosts = append(rec.DiscussionPosts, PostRefRecord(post))
	}
	if p.Seller != nil {
		rec.Items = make([]ItemRecord, 0, len(p.Seller.Items))
		for _, item := range p.Seller.Items {
			rec.Items = append(rec.Items, FromItem(item))
		}
	}

	return rec
}

// ToDomain rehydrates the variant named by Role. A missing or unknown role
// is a validation error; there is no fallback variant.
func (r PersonRecord) ToDomain() (*entity.Person, error) {
	var items []*entity.Item
	if entity.Role(r.Role).Capabilities().Sell {
		items = make([]*entity.Item, 0, len(r.Items))
		for _, rec := range r.Items {
			item, err := rec.ToDomain()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	posts := make([]entity.PostRef, 0, len(r.DiscussionPosts))
	for _, post := range r.DiscussionPosts {
		posts = append(posts, entity.PostRef(post))
	}

	return entity.RestorePerson(entity.PersonState{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Role:            entity.Role(r.Role),
		Phone:           r.Phone,
		WhatsApp:        r.WhatsApp,
		CreatedAt:       r.CreatedAt,
		IsBlocked:       r.IsBlocked,
		BlockReason:     r.BlockReason,
		DiscussionPosts: posts,
		Items:           items,
	})
}
