package models

import "time"

type Review struct {
	ReviewID string    `json:"id" bson:"reviewid"`
	ShopID   string    `json:"shopId" bson:"shopid"`
	UserID   string    `json:"userId" bson:"userid"`
	UserName string    `json:"userName,omitempty" bson:"-"`
	Rating   int       `json:"rating" bson:"rating"`
	Comment  string    `json:"comment" bson:"comment"`
	Date     time.Time `json:"date" bson:"date"`
}
