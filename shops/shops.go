package shops

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
	"garagehub/pager"
	"garagehub/rdx"
	"garagehub/search"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const listingCacheKey = "shops:listing"

// GetShops serves the public directory listing: active shops only,
// premium first, paged.
func GetShops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	shops, err := loadActiveShops(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shops")
		return
	}

	opts := utils.ParseQueryOptions(r)
	page, hasMore := pager.Page(shops, opts.Page, opts.Limit)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"shops":   page,
		"hasMore": hasMore,
		"total":   len(shops),
	})
}

// GetShop returns one shop. Pending and suspended entries are visible
// only to their owner and to admins; everyone else gets the same
// not-found state as for a missing id.
func GetShop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("shopid")

	var shop models.Shop
	err := db.ShopsCollection.FindOne(context.TODO(), bson.M{"shopid": id}).Decode(&shop)
	if err != nil {
		shopNotFound(w)
		return
	}

	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	role, _ := r.Context().Value(globals.RoleKey).(string)
	if !visibleTo(shop, userID, role) {
		shopNotFound(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, shop)
}

func shopNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  http.StatusNotFound,
		"message": "Shop not found",
	})
}

// visibleTo reports whether the caller may read the shop record.
// Active shops are public; everything else needs the owner or an
// admin.
func visibleTo(shop models.Shop, userID, role string) bool {
	if shop.Status == models.ShopStatusActive {
		return true
	}
	if role == models.RoleAdmin {
		return true
	}
	return userID != "" && shop.OwnerID == userID
}

// SearchShops runs the filter panel against the active listing.
// POST body carries the query; ?page selects the slice.
func SearchShops(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var q search.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid search query")
		return
	}

	shops, err := loadActiveShops(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shops")
		return
	}

	results := search.Filter(shops, q)

	opts := utils.ParseQueryOptions(r)
	page, hasMore := pager.Page(results, opts.Page, opts.Limit)

	// Echo whether this was a real search so the client can tell an
	// empty result apart from the untouched landing state.
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"shops":           page,
		"hasMore":         hasMore,
		"total":           len(results),
		"searchPerformed": !q.IsEmpty(),
	})
}

// CreateShop registers a new shop entry. It goes in as pending and
// stays out of the listing until an admin approves it.
func CreateShop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}

	var shop models.Shop
	if err := json.NewDecoder(r.Body).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid shop data")
		return
	}

	if strings.TrimSpace(shop.Name) == "" || shop.OpenHours == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and opening hours are required")
		return
	}
	if shop.Type != models.ShopTypeFixed && shop.Type != models.ShopTypeMobile {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown shop type")
		return
	}
	if shop.Type == models.ShopTypeFixed && shop.Address == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Fixed shops need an address")
		return
	}
	if shop.Type == models.ShopTypeMobile && len(shop.ServiceArea) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Mobile shops need at least one service area")
		return
	}

	shop.ShopID = "s" + utils.GenerateRandomString(14)
	shop.OwnerID = requestingUserID
	shop.Status = models.ShopStatusPending
	shop.IsPremium = false
	shop.Rating = 0
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = time.Now()

	if _, err := db.ShopsCollection.InsertOne(context.TODO(), shop); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating shop")
		return
	}

	// Pair the owner account with its shop.
	db.UserCollection.UpdateOne(context.TODO(),
		bson.M{"userid": requestingUserID},
		bson.M{"$set": bson.M{"shopid": shop.ShopID, "role": models.RoleShop}},
	)

	InvalidateListing()
	go mq.Emit(ctx, "shop-created", models.Index{EntityType: "shop", EntityId: shop.ShopID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, shop)
}

// loadActiveShops returns the ranked active listing, cached in Redis.
func loadActiveShops(ctx context.Context) ([]models.Shop, error) {
	if cached, _ := rdx.RdxGet(listingCacheKey); cached != "" {
		var shops []models.Shop
		if err := json.Unmarshal([]byte(cached), &shops); err == nil {
			return shops, nil
		}
	}

	shops, err := utils.FindAndDecode[models.Shop](ctx, db.ShopsCollection, bson.M{"status": models.ShopStatusActive})
	if err != nil {
		return nil, err
	}
	ranked := search.Rank(shops)

	if data, err := json.Marshal(ranked); err == nil {
		rdx.SetWithExpiry(listingCacheKey, string(data), 2*time.Minute)
	}
	return ranked, nil
}

// InvalidateListing drops the cached listing. Called whenever a shop
// record or its rating changes.
func InvalidateListing() {
	if err := rdx.RdxDel(listingCacheKey); err != nil {
		log.Printf("shops: cache invalidation failed: %v", err)
	}
}

// ByID fetches one shop for other packages.
func ByID(ctx context.Context, id string) (models.Shop, error) {
	var shop models.Shop
	err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": id}).Decode(&shop)
	return shop, err
}

// Exists reports whether a shop record is present.
func Exists(ctx context.Context, id string) (bool, error) {
	err := db.ShopsCollection.FindOne(ctx, bson.M{"shopid": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}
