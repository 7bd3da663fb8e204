package routes

import (
	"garagehub/admin"
	"garagehub/auth"
	"garagehub/booking"
	"garagehub/dashboard"
	"garagehub/middleware"
	"garagehub/models"
	"garagehub/ratelim"
	"garagehub/reviews"
	"garagehub/shops"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddShopRoutes(router *httprouter.Router) {
	router.GET("/api/shops", ratelim.RateLimit(shops.GetShops))
	router.GET("/api/shops/:shopid", middleware.OptionalAuth(shops.GetShop))
	router.POST("/api/search/shops", ratelim.RateLimit(shops.SearchShops))
	router.POST("/api/shops", middleware.Authenticate(shops.CreateShop))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/shops/:shopid/slots", ratelim.RateLimit(booking.GetSlots))
	router.GET("/api/shops/:shopid/bookings", middleware.Authenticate(booking.GetShopBookings))
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(booking.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(booking.GetUserBookings))
	router.PUT("/api/bookings/:bookingid/status", middleware.Authenticate(booking.UpdateBookingStatus))
	router.DELETE("/api/bookings/:bookingid", middleware.Authenticate(booking.CancelBooking))
	router.GET("/api/bookings/:bookingid/voucher", middleware.Authenticate(booking.BookingVoucher))
	router.POST("/api/bookings/verify-voucher", middleware.Authenticate(booking.VerifyVoucher))

	router.GET("/ws/bookings/:shopid", middleware.Authenticate(booking.HandleWS))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/shops/:shopid/reviews", reviews.GetReviews)
	router.POST("/api/shops/:shopid/reviews", ratelim.RateLimit(middleware.Authenticate(reviews.AddReview)))
	router.DELETE("/api/reviews/:reviewid", middleware.Authenticate(reviews.DeleteReview))
}

func AddDashboardRoutes(router *httprouter.Router) {
	router.GET("/api/dashboard/overview", middleware.RequireRole(models.RoleShop, dashboard.Overview))
	router.GET("/api/dashboard/bookings", middleware.RequireRole(models.RoleShop, dashboard.Bookings))
	router.PUT("/api/dashboard/profile", middleware.RequireRole(models.RoleShop, dashboard.UpdateProfile))
	router.GET("/api/dashboard/subscription", middleware.RequireRole(models.RoleShop, dashboard.Subscription))
	router.POST("/api/dashboard/subscription/upgrade", middleware.RequireRole(models.RoleShop, dashboard.Upgrade))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/stats", middleware.RequireRole(models.RoleAdmin, admin.Stats))
	router.GET("/api/admin/shops", middleware.RequireRole(models.RoleAdmin, admin.ListShops))
	router.PUT("/api/admin/shops/:shopid/status", middleware.RequireRole(models.RoleAdmin, admin.UpdateShopStatus))
	router.GET("/api/admin/reviews", middleware.RequireRole(models.RoleAdmin, admin.ListReviews))
	router.GET("/api/admin/users", middleware.RequireRole(models.RoleAdmin, admin.ListUsers))
	router.GET("/api/admin/revenue", middleware.RequireRole(models.RoleAdmin, admin.RevenueReport))
	router.GET("/api/admin/revenue/export", middleware.RequireRole(models.RoleAdmin, admin.ExportRevenuePDF))
}
