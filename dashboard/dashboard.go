// Package dashboard serves the shop owner's management surface:
// overview stats, the booking queue, profile edits and the
// subscription plan.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"garagehub/db"
	"garagehub/globals"
	"garagehub/models"
	"garagehub/shops"
	"garagehub/slots"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownShop resolves the caller's shop, answering the error responses
// itself. A nil return means the response was already written.
func ownShop(w http.ResponseWriter, r *http.Request, ctx context.Context) *models.Shop {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}

	var shop models.Shop
	err := db.ShopsCollection.FindOne(ctx, bson.M{"ownerId": userID}).Decode(&shop)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No shop registered for this account")
		return nil
	}
	return &shop
}

// Overview returns today's headline numbers for the owner's shop.
func Overview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop := ownShop(w, r, ctx)
	if shop == nil {
		return
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	todays, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"shopid": shop.ShopID,
		"time":   bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status": bson.M{"$ne": models.BookingStatusCancelled},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	pending, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"shopid": shop.ShopID,
		"status": models.BookingStatusPending,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	confirmed, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"shopid": shop.ShopID,
		"status": models.BookingStatusConfirmed,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	reviewCount, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{"shopid": shop.ShopID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count reviews")
		return
	}

	plan := models.PlanFree
	if shop.IsPremium {
		plan = models.PlanPremium
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"shop":              shop,
		"todaysBookings":    todays,
		"pendingBookings":   pending,
		"confirmedBookings": confirmed,
		"reviewCount":       reviewCount,
		"rating":            shop.Rating,
		"plan":              plan,
	})
}

// Bookings lists the shop's appointments, optionally filtered by
// ?status= and ?date=, newest first.
func Bookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop := ownShop(w, r, ctx)
	if shop == nil {
		return
	}

	filter := bson.M{"shopid": shop.ShopID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid date (want YYYY-MM-DD)")
			return
		}
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		filter["time"] = bson.M{"$gte": dayStart, "$lt": dayStart.Add(24 * time.Hour)}
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

// UpdateProfile edits the shop's public record. Opening hours are
// parsed before the write so a typo cannot break the slot calculator.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop := ownShop(w, r, ctx)
	if shop == nil {
		return
	}

	var req struct {
		Name           *string           `json:"name"`
		Address        *string           `json:"address"`
		ServiceArea    []string          `json:"service_area"`
		Services       []string          `json:"services"`
		Description    *string           `json:"description"`
		OpenHours      *string           `json:"openHours"`
		Phone          *string           `json:"phone"`
		Offers         []string          `json:"offers"`
		PriceReference map[string]string `json:"priceReference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.ServiceArea != nil {
		set["service_area"] = req.ServiceArea
	}
	if req.Services != nil {
		set["services"] = req.Services
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.OpenHours != nil {
		if _, _, err := slots.ParseOpenHours(*req.OpenHours); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Opening hours must look like \"8:00 - 18:00\"")
			return
		}
		set["openHours"] = *req.OpenHours
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Offers != nil {
		set["offers"] = req.Offers
	}
	if req.PriceReference != nil {
		set["priceReference"] = req.PriceReference
	}

	_, err := db.ShopsCollection.UpdateOne(ctx, bson.M{"shopid": shop.ShopID}, bson.M{"$set": set})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update shop")
		return
	}

	shops.InvalidateListing()

	var updated models.Shop
	if err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": shop.ShopID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reload shop")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// Subscription shows the shop's current plan.
func Subscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop := ownShop(w, r, ctx)
	if shop == nil {
		return
	}

	var sub models.Subscription
	err := db.SubscriptionsCollection.FindOne(ctx, bson.M{"shopid": shop.ShopID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		sub = models.Subscription{ShopID: shop.ShopID, Plan: models.PlanFree}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load subscription")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sub)
}

// Upgrade switches the shop to the premium plan for a month and flags
// the listing entry.
func Upgrade(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shop := ownShop(w, r, ctx)
	if shop == nil {
		return
	}

	now := time.Now()
	sub := models.Subscription{
		ShopID:    shop.ShopID,
		Plan:      models.PlanPremium,
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := db.SubscriptionsCollection.ReplaceOne(ctx, bson.M{"shopid": shop.ShopID}, sub, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	_, err := db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": shop.ShopID},
		bson.M{"$set": bson.M{"isPremium": true, "updated_at": now}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to flag shop as premium")
		return
	}

	shops.InvalidateListing()
	utils.RespondWithJSON(w, http.StatusOK, sub)
}
