// Package booking exposes slot availability and the appointment
// lifecycle. Slot occupancy is always recomputed from the bookings
// collection; the capacity check runs once against the offered slots
// during validation and once more against the database at insert time.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"garagehub/db"
	"garagehub/forms"
	"garagehub/globals"
	"garagehub/models"
	"garagehub/mq"
	"garagehub/slots"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSlots serves hourly availability for one shop and date.
// GET /api/shops/:shopid/slots?date=2025-05-20
func GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shopID := ps.ByName("shopid")
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or missing date (want YYYY-MM-DD)")
		return
	}

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": shopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	daySlots, err := slotsFor(ctx, shop, date)
	if err != nil {
		log.Printf("booking: slots for %s: %v", shopID, err)
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Shop has malformed opening hours")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"shopId": shopID,
		"date":   date.Format("2006-01-02"),
		"slots":  daySlots,
	})
}

// bookingRequest is the client payload for a new appointment.
type bookingRequest struct {
	ShopID string `json:"shopId"`
	forms.BookingForm
}

// CreateBooking validates the form, re-checks capacity, and inserts
// the appointment. A full slot answers 409 so the client re-fetches
// availability.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid booking data")
		return
	}

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": req.ShopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}
	if shop.Status != models.ShopStatusActive {
		utils.RespondWithError(w, http.StatusConflict, "Shop is not accepting bookings")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or missing date (want YYYY-MM-DD)")
		return
	}

	offered, err := slotsFor(ctx, shop, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Shop has malformed opening hours")
		return
	}

	if errs := req.Validate(shop.Type, offered); len(errs) > 0 {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{"errors": errs})
		return
	}

	hour, err := slotHour(req.Time)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{"errors": forms.Errors{"time": "Vui lòng chọn thời gian"}})
		return
	}
	slotTime := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)

	// Validation saw a snapshot; count again right before the insert.
	taken, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"shopid": shop.ShopID,
		"time":   slotTime,
		"status": bson.M{"$ne": models.BookingStatusCancelled},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check availability")
		return
	}
	if taken >= slots.Capacity {
		utils.RespondWithError(w, http.StatusConflict, "Khung giờ này đã đầy")
		return
	}

	b := models.Booking{
		BookingID:   "b" + utils.GenerateRandomString(14),
		ShopID:      shop.ShopID,
		UserID:      userID,
		Time:        slotTime,
		VehicleType: req.VehicleType,
		Issue:       req.Issue,
		Status:      models.BookingStatusPending,
		CreatedAt:   time.Now(),
	}
	if shop.Type == models.ShopTypeMobile {
		address := strings.TrimSpace(req.Address)
		b.DeliveryAddress = &address
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	go mq.Emit(r.Context(), "booking-created", models.Index{
		EntityType: "booking", EntityId: b.BookingID, Method: "POST",
		ItemId: shop.ShopID, ItemType: "shop",
	})

	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// GetShopBookings lists one shop's appointments for its owner or an
// admin, newest first. GET /api/shops/:shopid/bookings
func GetShopBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shopID := ps.ByName("shopid")

	if !canManage(r.Context(), ctx, models.Booking{ShopID: shopID}) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	filter := bson.M{"shopid": shopID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// GetUserBookings lists the caller's appointments, newest first.
func GetUserBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

// UpdateBookingStatus lets the shop confirm or cancel an appointment.
// PUT /api/bookings/:bookingid/status {"status":"confirmed"}
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookingID := ps.ByName("bookingid")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if req.Status != models.BookingStatusConfirmed && req.Status != models.BookingStatusCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if !canManage(r.Context(), ctx, b) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	_, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"status": req.Status}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	go mq.Emit(r.Context(), "booking-updated", models.Index{
		EntityType: "booking", EntityId: bookingID, Method: "PUT",
		ItemId: b.ShopID, ItemType: "shop",
	})

	b.Status = req.Status
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// CancelBooking cancels the caller's own appointment. Cancelling an
// already cancelled booking answers 200 again; the operation is
// idempotent.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	bookingID := ps.ByName("bookingid")

	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&b); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if b.UserID != userID && !canManage(r.Context(), ctx, b) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if b.Status != models.BookingStatusCancelled {
		_, err := db.BookingsCollection.UpdateOne(ctx,
			bson.M{"bookingid": bookingID},
			bson.M{"$set": bson.M{"status": models.BookingStatusCancelled}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
			return
		}

		go mq.Emit(r.Context(), "booking-cancelled", models.Index{
			EntityType: "booking", EntityId: bookingID, Method: "DELETE",
			ItemId: b.ShopID, ItemType: "shop",
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cancelled": bookingID})
}

// canManage reports whether the caller owns the booking's shop or is
// an admin. reqCtx carries the identity, dbCtx the query deadline.
func canManage(reqCtx context.Context, dbCtx context.Context, b models.Booking) bool {
	role, _ := reqCtx.Value(globals.RoleKey).(string)
	if role == models.RoleAdmin {
		return true
	}
	if role != models.RoleShop {
		return false
	}
	userID, _ := reqCtx.Value(globals.UserIDKey).(string)

	var shop models.Shop
	if err := db.ShopsCollection.FindOne(dbCtx, bson.M{"shopid": b.ShopID}).Decode(&shop); err != nil {
		return false
	}
	return shop.OwnerID == userID
}

// slotsFor loads the shop's bookings for one date and derives its
// hourly availability.
func slotsFor(ctx context.Context, shop models.Shop, date time.Time) ([]models.TimeSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, bson.M{
		"shopid": shop.ShopID,
		"time":   bson.M{"$gte": dayStart, "$lt": dayEnd},
	})
	if err != nil {
		return nil, err
	}
	return slots.ForShop(shop, date, bookings)
}

// slotHour extracts the hour from a "9:00" slot label.
func slotHour(label string) (int, error) {
	h, _, ok := strings.Cut(label, ":")
	if !ok {
		return 0, fmt.Errorf("malformed slot label %q", label)
	}
	return strconv.Atoi(h)
}
