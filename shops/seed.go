package shops

import (
	"context"
	"log"
	"time"

	"garagehub/db"
	"garagehub/models"

	"go.mongodb.org/mongo-driver/bson"
)

func addr(s string) *string { return &s }

func fixtureShops() []models.Shop {
	now := time.Now()
	return []models.Shop{
		{
			ShopID:      "shop-001",
			Name:        "Garage Thành Công",
			Address:     addr("123 Lê Lợi, Quận 1, TP.HCM"),
			Services:    []string{"Ô tô", "Thay nhớt", "Sửa phanh", "Bảo dưỡng định kỳ"},
			Description: "Garage uy tín hơn 10 năm, chuyên sửa chữa ô tô các loại.",
			IsPremium:   true,
			Rating:      4.8,
			OpenHours:   "8:00 - 18:00",
			Phone:       "0901234567",
			Type:        models.ShopTypeFixed,
			Images:      []string{"/static/shoppic/shop-001.jpg"},
			Offers:      []string{"Giảm 10% cho khách hàng mới"},
			PriceReference: map[string]string{
				"Thay nhớt": "150.000đ - 500.000đ",
				"Sửa phanh": "300.000đ - 1.200.000đ",
			},
			Status:    models.ShopStatusActive,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ShopID:      "shop-002",
			Name:        "Cứu Hộ Xe Máy 24/7",
			ServiceArea: []string{"Quận 3", "Quận 10", "Quận Bình Thạnh"},
			Services:    []string{"Xe máy", "Vá lốp", "Cứu hộ"},
			Description: "Sửa xe máy lưu động, có mặt trong 30 phút.",
			IsPremium:   false,
			Rating:      4.5,
			OpenHours:   "7:00 - 22:00",
			Phone:       "0912345678",
			Type:        models.ShopTypeMobile,
			PriceReference: map[string]string{
				"Vá lốp": "30.000đ - 80.000đ",
			},
			Status:    models.ShopStatusActive,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ShopID:      "shop-003",
			Name:        "Tiệm Sửa Xe Anh Ba",
			Address:     addr("45 Trần Hưng Đạo, Quận 5, TP.HCM"),
			Services:    []string{"Xe máy", "Thay nhớt", "Sửa điện"},
			Description: "Tiệm gia đình, giá bình dân.",
			IsPremium:   true,
			Rating:      4.2,
			OpenHours:   "9:00 - 18:00",
			Phone:       "0923456789",
			Type:        models.ShopTypeFixed,
			Status:      models.ShopStatusActive,
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ShopID:      "shop-004",
			Name:        "AutoCare Sài Gòn",
			Address:     addr("8 Nguyễn Huệ, Quận 1, TP.HCM"),
			Services:    []string{"Ô tô", "Sơn xe", "Đồng sơn", "Rửa xe"},
			Description: "Trung tâm chăm sóc xe hơi cao cấp.",
			IsPremium:   false,
			Rating:      4.9,
			OpenHours:   "8:00 - 20:00",
			Phone:       "0934567890",
			Type:        models.ShopTypeFixed,
			Status:      models.ShopStatusActive,
			CreatedAt:   now, UpdatedAt: now,
		},
		{
			ShopID:      "shop-005",
			Name:        "Sửa Ô Tô Lưu Động Minh Phát",
			ServiceArea: []string{"Quận 7", "Nhà Bè"},
			Services:    []string{"Ô tô", "Cứu hộ", "Thay ắc quy"},
			Description: "Đội kỹ thuật viên đến tận nơi trong khu Nam Sài Gòn.",
			IsPremium:   false,
			Rating:      4.1,
			OpenHours:   "6:00 - 23:00",
			Phone:       "0945678901",
			Type:        models.ShopTypeMobile,
			Status:      models.ShopStatusActive,
			CreatedAt:   now, UpdatedAt: now,
		},
	}
}

// Seed inserts the fixture shops when the collection is empty. Dev
// convenience only, gated behind SEED_SHOPS=true in main.
func Seed(ctx context.Context) error {
	count, err := db.ShopsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(fixtureShops()))
	for _, s := range fixtureShops() {
		docs = append(docs, s)
	}
	if _, err := db.ShopsCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("shops: seeded %d fixture shops", len(docs))
	return nil
}
