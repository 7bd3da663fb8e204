// Package admin is the platform operator's surface: directory
// moderation, review moderation, and the revenue report.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"garagehub/db"
	"garagehub/models"
	"garagehub/mq"
	"garagehub/shops"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stats returns the platform headline counts.
func Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	totalShops, err := db.ShopsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count shops")
		return
	}
	pendingShops, err := db.ShopsCollection.CountDocuments(ctx, bson.M{"status": models.ShopStatusPending})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count shops")
		return
	}
	premiumShops, err := db.ShopsCollection.CountDocuments(ctx, bson.M{"isPremium": true})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count shops")
		return
	}
	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}
	totalBookings, err := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalShops":     totalShops,
		"pendingShops":   pendingShops,
		"premiumShops":   premiumShops,
		"totalUsers":     totalUsers,
		"totalBookings":  totalBookings,
		"monthlyRevenue": float64(premiumShops) * PremiumMonthlyFee,
	})
}

// ListShops lists every shop regardless of status, optionally
// filtered by ?status=.
func ListShops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})

	list, err := utils.FindAndDecode[models.Shop](ctx, db.ShopsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"shops": list})
}

// UpdateShopStatus approves, suspends, or reopens a directory entry.
// PUT /api/admin/shops/:shopid/status {"status":"active"}
func UpdateShopStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shopID := ps.ByName("shopid")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	switch req.Status {
	case models.ShopStatusActive, models.ShopStatusPending, models.ShopStatusSuspended:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	res, err := db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": shopID},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update shop")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	shops.InvalidateListing()
	go mq.Emit(r.Context(), "shop-status-changed", models.Index{
		EntityType: "shop", EntityId: shopID, Method: "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"shopId": shopID, "status": req.Status})
}

// ListReviews pages through all reviews for moderation, newest first.
// Deletion goes through the reviews package so ratings stay correct.
func ListReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if shopID := r.URL.Query().Get("shopId"); shopID != "" {
		filter["shopid"] = shopID
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "date", Value: -1}})

	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": list})
}

// ListUsers pages through registered accounts.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().
		SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0, "refresh_token": 0})

	list, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": list})
}
