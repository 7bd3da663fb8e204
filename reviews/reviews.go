package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"garagehub/db"
	"garagehub/globals"
	"garagehub/models"
	"garagehub/mq"
	"garagehub/shops"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetReviews lists a shop's reviews newest first, with reviewer names
// joined in.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shopID := ps.ByName("shopid")

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "date", Value: -1}})

	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, bson.M{"shopid": shopID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	attachUserNames(ctx, reviews)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": reviews})
}

// AddReview records one review per user per shop and refreshes the
// shop's average rating.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shopID := ps.ByName("shopid")

	exists, err := shops.Exists(ctx, shopID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	count, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{"userid": userID, "shopid": shopID})
	if err != nil {
		log.Printf("reviews: duplicate check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this shop")
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil ||
		review.Rating < 1 || review.Rating > 5 || strings.TrimSpace(review.Comment) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	review.ReviewID = "r" + utils.GenerateRandomString(15)
	review.UserID = userID
	review.ShopID = shopID
	review.Date = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert review")
		return
	}

	refreshShopRating(ctx, shopID)

	go mq.Emit(r.Context(), "review-added", models.Index{
		EntityType: "review", EntityId: review.ReviewID, Method: "POST",
		ItemId: shopID, ItemType: "shop",
	})

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// DeleteReview removes a review. Allowed for the author and for
// admins; the shop rating is recomputed afterwards.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	reviewID := ps.ByName("reviewid")

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	if review.UserID != userID && !isAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	refreshShopRating(ctx, review.ShopID)

	go mq.Emit(r.Context(), "review-deleted", models.Index{
		EntityType: "review", EntityId: reviewID, Method: "DELETE",
		ItemId: review.ShopID, ItemType: "shop",
	})

	w.WriteHeader(http.StatusOK)
}

// attachUserNames fills the display name for each review. Reviews
// store only the user id; the name is joined at read time so renames
// propagate.
func attachUserNames(ctx context.Context, reviews []models.Review) {
	ids := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		ids = append(ids, rv.UserID)
	}
	if len(ids) == 0 {
		return
	}

	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		log.Printf("reviews: user join failed: %v", err)
		return
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Name
	}
	for i := range reviews {
		reviews[i].UserName = names[reviews[i].UserID]
	}
}

// refreshShopRating recomputes the average rating after a review
// changes and drops the listing cache.
func refreshShopRating(ctx context.Context, shopID string) {
	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, bson.M{"shopid": shopID})
	if err != nil {
		log.Printf("reviews: rating refresh failed for %s: %v", shopID, err)
		return
	}

	var avg float64
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}

	_, err = db.ShopsCollection.UpdateOne(ctx,
		bson.M{"shopid": shopID},
		bson.M{"$set": bson.M{"rating": avg, "updated_at": time.Now()}},
	)
	if err != nil {
		log.Printf("reviews: rating write failed for %s: %v", shopID, err)
		return
	}

	shops.InvalidateListing()
}

func isAdmin(ctx context.Context) bool {
	role, ok := ctx.Value(globals.RoleKey).(string)
	return ok && role == models.RoleAdmin
}
