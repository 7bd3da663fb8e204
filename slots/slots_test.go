package slots

import (
	"errors"
	"testing"
	"time"

	"garagehub/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookingAt(shopID string, t time.Time) models.Booking {
	return models.Booking{BookingID: "b", ShopID: shopID, Time: t, Status: models.BookingStatusPending}
}

func TestParseOpenHours(t *testing.T) {
	open, close, err := ParseOpenHours("9:00 - 18:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open != 9 || close != 18 {
		t.Fatalf("expected 9..18, got %d..%d", open, close)
	}
}

func TestParseOpenHoursMalformed(t *testing.T) {
	for _, input := range []string{"", "9:00", "9:00 to 18:00", "abc - def", "25:00 - 26:00"} {
		_, _, err := ParseOpenHours(input)
		if err == nil {
			t.Errorf("expected error for %q", input)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("expected *ParseError for %q, got %T", input, err)
		}
	}
}

func TestAvailabilityNoBookings(t *testing.T) {
	got := Availability(9, 12, date(2025, time.May, 20), nil)

	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got))
	}
	want := []string{"9:00", "10:00", "11:00"}
	for i, s := range got {
		if s.Time != want[i] {
			t.Errorf("slot %d labeled %s, want %s", i, s.Time, want[i])
		}
		if !s.Available {
			t.Errorf("slot %s should be available", s.Time)
		}
	}
}

func TestSlotFullAtCapacity(t *testing.T) {
	day := date(2025, time.May, 20)
	at10 := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		bookingAt("shop-001", at10),
		bookingAt("shop-001", at10),
	}

	got := Availability(9, 12, day, bookings)
	if got[0].Time != "9:00" || !got[0].Available {
		t.Errorf("9:00 should stay available")
	}
	if got[1].Time != "10:00" || got[1].Available {
		t.Errorf("10:00 should be full at %d bookings", Capacity)
	}
	if got[2].Time != "11:00" || !got[2].Available {
		t.Errorf("11:00 should stay available")
	}
}

func TestCancelledBookingsDoNotCount(t *testing.T) {
	day := date(2025, time.May, 20)
	at10 := time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)
	cancelled := bookingAt("shop-001", at10)
	cancelled.Status = models.BookingStatusCancelled

	got := Availability(9, 12, day, []models.Booking{cancelled, bookingAt("shop-001", at10)})
	if !got[1].Available {
		t.Fatal("one live booking plus one cancelled should leave 10:00 open")
	}
}

func TestBookingsOnOtherDatesDoNotCount(t *testing.T) {
	day := date(2025, time.May, 20)
	otherDay := time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		bookingAt("shop-001", otherDay),
		bookingAt("shop-001", otherDay),
	}

	got := Availability(9, 12, day, bookings)
	if !got[1].Available {
		t.Fatal("bookings on a different date must not block the slot")
	}
}

func TestOpenEqualsCloseYieldsNoSlots(t *testing.T) {
	if got := Availability(9, 9, date(2025, time.May, 20), nil); len(got) != 0 {
		t.Fatalf("expected 0 slots, got %d", len(got))
	}
	if got := Availability(18, 9, date(2025, time.May, 20), nil); len(got) != 0 {
		t.Fatalf("open after close: expected 0 slots, got %d", len(got))
	}
}

func TestForShopSurfacesParseError(t *testing.T) {
	shop := models.Shop{ShopID: "shop-001", OpenHours: "whenever"}
	_, err := ForShop(shop, date(2025, time.May, 20), nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}
