package search

import (
	"testing"

	"garagehub/models"
)

func addr(s string) *string { return &s }

func sampleShops() []models.Shop {
	return []models.Shop{
		{ShopID: "shop-001", Name: "Garage Trung Tâm", Address: addr("12 Lê Lợi, Quận 1"), Services: []string{"Ô tô", "Thay nhớt", "Sửa phanh"}, IsPremium: true, Rating: 4.8, Type: models.ShopTypeFixed, Status: models.ShopStatusActive},
		{ShopID: "shop-002", Name: "Sửa Xe Lưu Động 24/7", Address: nil, ServiceArea: []string{"Quận 3", "Quận 10"}, Services: []string{"Xe máy", "Vá lốp"}, IsPremium: false, Rating: 4.5, Type: models.ShopTypeMobile, Status: models.ShopStatusActive},
		{ShopID: "shop-003", Name: "Tiệm Anh Ba", Address: addr("45 Trần Hưng Đạo, Quận 5"), Services: []string{"Xe máy", "Thay nhớt"}, IsPremium: true, Rating: 4.2, Type: models.ShopTypeFixed, Status: models.ShopStatusActive},
		{ShopID: "shop-004", Name: "AutoCare Sài Gòn", Address: addr("8 Nguyễn Huệ, Quận 1"), Services: []string{"Ô tô", "Sơn xe"}, IsPremium: false, Rating: 4.9, Type: models.ShopTypeFixed, Status: models.ShopStatusActive},
		{ShopID: "shop-005", Name: "Tiệm Chờ Duyệt", Address: addr("99 CMT8, Quận 3"), Services: []string{"Ô tô"}, IsPremium: false, Rating: 5.0, Type: models.ShopTypeFixed, Status: models.ShopStatusPending},
	}
}

func ids(shops []models.Shop) []string {
	out := make([]string, len(shops))
	for i, s := range shops {
		out[i] = s.ShopID
	}
	return out
}

func TestEmptyQueryReturnsAllActiveRanked(t *testing.T) {
	active := ActiveOnly(sampleShops())
	got := Filter(active, Query{})

	if len(got) != 4 {
		t.Fatalf("expected 4 active shops, got %d", len(got))
	}
	// premium first (001 then 003 by rating), then free by rating desc
	want := []string{"shop-001", "shop-003", "shop-004", "shop-002"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], id)
		}
	}
}

func TestRankIsIdempotent(t *testing.T) {
	first := Rank(ActiveOnly(sampleShops()))
	second := Rank(first)

	for i := range first {
		if first[i].ShopID != second[i].ShopID {
			t.Fatalf("re-ranking changed order at %d: %s vs %s", i, first[i].ShopID, second[i].ShopID)
		}
	}
}

func TestRankIsStableForTies(t *testing.T) {
	shops := []models.Shop{
		{ShopID: "a", IsPremium: false, Rating: 4.0},
		{ShopID: "b", IsPremium: false, Rating: 4.0},
		{ShopID: "c", IsPremium: false, Rating: 4.0},
	}
	got := Rank(shops)
	want := []string{"a", "b", "c"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Errorf("tie order broken at %d: expected %s, got %s", i, want[i], id)
		}
	}
}

func TestLocationQueryMatchesAddressAndServiceArea(t *testing.T) {
	active := ActiveOnly(sampleShops())

	got := Filter(active, Query{Text: "quận 1"})
	if len(got) != 2 {
		t.Fatalf("expected 2 shops in Quận 1, got %d: %v", len(got), ids(got))
	}

	// mobile shop matches through its service areas
	got = Filter(active, Query{Text: "Quận 10"})
	if len(got) != 1 || got[0].ShopID != "shop-002" {
		t.Fatalf("expected shop-002 via service area, got %v", ids(got))
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	active := ActiveOnly(sampleShops())

	q := Query{
		VehicleTypes: []string{"Ô tô"},
		MinRating:    4.5,
		ShopTypes:    []string{models.ShopTypeFixed},
	}
	got := Filter(active, q)

	for _, s := range got {
		if !contains(s.Services, "Ô tô") {
			t.Errorf("%s does not offer Ô tô", s.ShopID)
		}
		if s.Rating < 4.5 {
			t.Errorf("%s rating %.1f below minimum", s.ShopID, s.Rating)
		}
		if s.Type != models.ShopTypeFixed {
			t.Errorf("%s has type %s", s.ShopID, s.Type)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected shop-001 and shop-004, got %v", ids(got))
	}
}

func TestFilterValuesAreDisjunctive(t *testing.T) {
	active := ActiveOnly(sampleShops())

	got := Filter(active, Query{ServiceTypes: []string{"Vá lốp", "Sơn xe"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 shops offering either service, got %v", ids(got))
	}
}

func TestVehicleTypeSharesServicesNamespace(t *testing.T) {
	// The vehicle-type filter intersects the generic services list, so
	// a shop only matches "Xe máy" when that value appears there.
	active := ActiveOnly(sampleShops())
	got := Filter(active, Query{VehicleTypes: []string{"Xe máy"}})
	want := map[string]bool{"shop-002": true, "shop-003": true}
	if len(got) != 2 {
		t.Fatalf("expected 2 shops, got %v", ids(got))
	}
	for _, s := range got {
		if !want[s.ShopID] {
			t.Errorf("unexpected shop %s", s.ShopID)
		}
	}
}

func TestResultIsSubsetOfInput(t *testing.T) {
	active := ActiveOnly(sampleShops())
	source := map[string]bool{}
	for _, s := range active {
		source[s.ShopID] = true
	}

	got := Filter(active, Query{Text: "quận"})
	for _, s := range got {
		if !source[s.ShopID] {
			t.Errorf("result contains shop %s not in the source", s.ShopID)
		}
	}
}

func TestNoMatchesYieldsEmptySlice(t *testing.T) {
	got := Filter(ActiveOnly(sampleShops()), Query{Text: "Hà Nội"})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	active := ActiveOnly(sampleShops())
	before := ids(active)

	Filter(active, Query{MinRating: 4.5})

	for i, id := range ids(active) {
		if id != before[i] {
			t.Fatalf("input order changed at %d", i)
		}
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
