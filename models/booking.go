package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is one appointment request. Time carries the date and the
// hour; minutes and seconds are always zero.
type Booking struct {
	BookingID       string    `json:"id" bson:"bookingid"`
	ShopID          string    `json:"shopId" bson:"shopid"`
	UserID          string    `json:"userId" bson:"userid"`
	Time            time.Time `json:"time" bson:"time"`
	VehicleType     string    `json:"vehicleType" bson:"vehicleType"`
	Issue           string    `json:"issue" bson:"issue"`
	DeliveryAddress *string   `json:"deliveryAddress" bson:"deliveryAddress,omitempty"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// TimeSlot is one bookable hour on one date. Derived on demand, never
// persisted.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"` // "9:00"
	Available bool   `json:"available"`
}
