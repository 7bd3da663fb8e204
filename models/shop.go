package models

import "time"

const (
	ShopTypeFixed  = "fixed"
	ShopTypeMobile = "mobile"
)

const (
	ShopStatusActive    = "active"
	ShopStatusPending   = "pending"
	ShopStatusSuspended = "suspended"
)

// Shop is one directory entry. A fixed shop has a street address; a
// mobile shop has Address == nil and serves the areas in ServiceArea.
type Shop struct {
	ShopID         string            `json:"id" bson:"shopid"`
	Name           string            `json:"name" bson:"name"`
	Address        *string           `json:"address" bson:"address,omitempty"`
	ServiceArea    []string          `json:"service_area" bson:"service_area"`
	Services       []string          `json:"services" bson:"services"`
	Description    string            `json:"description" bson:"description"`
	IsPremium      bool              `json:"isPremium" bson:"isPremium"`
	Rating         float64           `json:"rating" bson:"rating"`
	OpenHours      string            `json:"openHours" bson:"openHours"` // "H:MM - H:MM"
	Phone          string            `json:"phone" bson:"phone"`
	Type           string            `json:"type" bson:"type"`
	Images         []string          `json:"images" bson:"images"`
	Offers         []string          `json:"offers,omitempty" bson:"offers,omitempty"`
	PriceReference map[string]string `json:"priceReference" bson:"priceReference"`
	Status         string            `json:"status" bson:"status"`
	OwnerID        string            `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}

// Location returns the text a listing shows for the shop: the address
// for a fixed shop, the service areas for a mobile one.
func (s Shop) Location() string {
	if s.Address != nil {
		return *s.Address
	}
	out := ""
	for i, area := range s.ServiceArea {
		if i > 0 {
			out += ", "
		}
		out += area
	}
	return out
}
