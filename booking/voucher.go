package booking

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"garagehub/db"
	"garagehub/globals"
	"garagehub/models"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func voucherSecret() []byte {
	if s := os.Getenv("VOUCHER_SECRET"); s != "" {
		return []byte(s)
	}
	return globals.JwtSecret
}

// voucherPayload signs shopID|bookingID|unix so the shop can verify
// the voucher without a round trip at the counter.
func voucherPayload(b models.Booking) string {
	data := fmt.Sprintf("%s|%s|%d", b.ShopID, b.BookingID, b.Time.Unix())
	h := hmac.New(sha256.New, voucherSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// BookingVoucher renders the booking's check-in code as a QR PNG.
// GET /api/bookings/:bookingid/voucher
func BookingVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
	if b.Status == models.BookingStatusCancelled {
		utils.RespondWithError(w, http.StatusConflict, "Booking was cancelled")
		return
	}

	png, err := qrcode.Encode(voucherPayload(b), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// VerifyVoucher checks a scanned payload's signature and answers with
// the booking it names. POST body: {"payload":"..."}
func VerifyVoucher(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	b, err := bookingFromPayload(ctx, req.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Voucher verification failed")
		return
	}

	if !canManage(r.Context(), ctx, b) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "booking": b})
}

// bookingFromPayload parses shopID|bookingID|unix|signature, verifies
// the HMAC, and loads the booking.
func bookingFromPayload(ctx context.Context, payload string) (models.Booking, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return models.Booking{}, fmt.Errorf("malformed voucher payload")
	}
	shopID, bookingID, sig := parts[0], parts[1], parts[3]
	ts, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return models.Booking{}, fmt.Errorf("malformed voucher timestamp")
	}

	data := fmt.Sprintf("%s|%s|%d", shopID, bookingID, ts)
	h := hmac.New(sha256.New, voucherSecret())
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return models.Booking{}, fmt.Errorf("bad voucher signature")
	}

	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID, "shopid": shopID}).Decode(&b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}
