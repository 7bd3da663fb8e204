// Package slots derives hourly booking availability from a shop's
// operating hours and its existing bookings.
package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"garagehub/models"
)

// Capacity is the number of concurrent bookings one hourly slot holds
// (service bays per hour).
const Capacity = 2

// ParseError reports a malformed operating-hours string. Operating
// hours come from shop records, so a parse failure is a data defect
// and must surface loudly rather than default to an empty range.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed operating hours %q (want \"H:MM - H:MM\")", e.Input)
}

// ParseOpenHours splits an "H:MM - H:MM" string into open and close
// hours.
func ParseOpenHours(hours string) (open, close int, err error) {
	parts := strings.Split(hours, " - ")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Input: hours}
	}
	open, err = parseHour(parts[0])
	if err != nil {
		return 0, 0, &ParseError{Input: hours}
	}
	close, err = parseHour(parts[1])
	if err != nil {
		return 0, 0, &ParseError{Input: hours}
	}
	return open, close, nil
}

func parseHour(t string) (int, error) {
	h, _, ok := strings.Cut(strings.TrimSpace(t), ":")
	if !ok {
		return 0, fmt.Errorf("missing colon in %q", t)
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 23 {
		return 0, fmt.Errorf("hour %d out of range", n)
	}
	return n, nil
}

// Availability returns one slot per hour in [open, close) for the
// given date. A slot is available while fewer than Capacity
// non-cancelled bookings occupy the same date and hour. Pure function
// of its inputs; callers recompute it whenever the shop or date
// changes. open >= close yields an empty list.
func Availability(open, close int, date time.Time, bookings []models.Booking) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, max(close-open, 0))
	y, m, d := date.Date()
	for hour := open; hour < close; hour++ {
		taken := 0
		for _, b := range bookings {
			if b.Status == models.BookingStatusCancelled {
				continue
			}
			by, bm, bd := b.Time.Date()
			if by == y && bm == m && bd == d && b.Time.Hour() == hour {
				taken++
			}
		}
		slots = append(slots, models.TimeSlot{
			ID:        fmt.Sprintf("time-%d", hour),
			Time:      fmt.Sprintf("%d:00", hour),
			Available: taken < Capacity,
		})
	}
	return slots
}

// ForShop parses the shop's hours and computes availability in one
// step.
func ForShop(shop models.Shop, date time.Time, bookings []models.Booking) ([]models.TimeSlot, error) {
	open, close, err := ParseOpenHours(shop.OpenHours)
	if err != nil {
		return nil, err
	}
	return Availability(open, close, date, bookings), nil
}
