package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/shops", nil)
	opts := ParseQueryOptions(r)

	if opts.Page != 1 || opts.Limit != 10 {
		t.Fatalf("expected page 1 limit 10, got page %d limit %d", opts.Page, opts.Limit)
	}
}

func TestParseQueryOptionsClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/shops?limit=1000000", nil)
	opts := ParseQueryOptions(r)

	if opts.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, opts.Limit)
	}
}

func TestParseQueryOptionsRejectsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/shops?page=-3&limit=abc", nil)
	opts := ParseQueryOptions(r)

	if opts.Page != 1 || opts.Limit != 10 {
		t.Fatalf("expected fallbacks, got page %d limit %d", opts.Page, opts.Limit)
	}
}

func TestParsePaginationClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/bookings?page=2&limit=500", nil)
	skip, limit := ParsePagination(r, 10, 100)

	if limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", limit)
	}
	if skip != 100 {
		t.Fatalf("expected skip 100 for page 2, got %d", skip)
	}
}
