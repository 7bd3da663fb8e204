package shops

import (
	"testing"

	"garagehub/models"
)

func TestActiveShopIsPubliclyVisible(t *testing.T) {
	shop := models.Shop{ShopID: "shop-001", Status: models.ShopStatusActive, OwnerID: "u1"}

	if !visibleTo(shop, "", "") {
		t.Fatal("active shop should be visible without identity")
	}
	if !visibleTo(shop, "u2", models.RoleCustomer) {
		t.Fatal("active shop should be visible to any customer")
	}
}

func TestPendingShopIsHiddenFromStrangers(t *testing.T) {
	shop := models.Shop{ShopID: "shop-001", Status: models.ShopStatusPending, OwnerID: "u1"}

	if visibleTo(shop, "", "") {
		t.Fatal("pending shop must not be visible anonymously")
	}
	if visibleTo(shop, "u2", models.RoleCustomer) {
		t.Fatal("pending shop must not be visible to other users")
	}
}

func TestNonActiveShopVisibleToOwnerAndAdmin(t *testing.T) {
	for _, status := range []string{models.ShopStatusPending, models.ShopStatusSuspended} {
		shop := models.Shop{ShopID: "shop-001", Status: status, OwnerID: "u1"}

		if !visibleTo(shop, "u1", models.RoleShop) {
			t.Errorf("%s shop should be visible to its owner", status)
		}
		if !visibleTo(shop, "u9", models.RoleAdmin) {
			t.Errorf("%s shop should be visible to admins", status)
		}
	}
}

func TestOwnerMatchRequiresIdentity(t *testing.T) {
	// A shop record with an empty owner must not leak to anonymous
	// callers through an empty-string match.
	shop := models.Shop{ShopID: "shop-001", Status: models.ShopStatusPending}

	if visibleTo(shop, "", models.RoleCustomer) {
		t.Fatal("empty user id must never pass the owner check")
	}
}
