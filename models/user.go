package models

import "time"

const (
	RoleCustomer = "customer"
	RoleShop     = "shop"
	RoleAdmin    = "admin"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          string    `json:"role" bson:"role"`
	ShopID        string    `json:"shopId,omitempty" bson:"shopid,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

type Subscription struct {
	ShopID    string    `json:"shopId" bson:"shopid"`
	Plan      string    `json:"plan" bson:"plan"`
	StartDate time.Time `json:"startDate" bson:"startDate"`
	EndDate   time.Time `json:"endDate" bson:"endDate"`
}
