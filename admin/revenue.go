package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"garagehub/db"
	"garagehub/models"
	"garagehub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
)

// PremiumMonthlyFee is what a premium listing costs per month, USD.
const PremiumMonthlyFee = 20.0

type revenueReport struct {
	GeneratedAt    time.Time     `json:"generatedAt"`
	PremiumShops   []models.Shop `json:"premiumShops"`
	PremiumCount   int           `json:"premiumCount"`
	MonthlyRevenue float64       `json:"monthlyRevenue"`
}

func buildRevenueReport(ctx context.Context) (revenueReport, error) {
	premium, err := utils.FindAndDecode[models.Shop](ctx, db.ShopsCollection, bson.M{"isPremium": true})
	if err != nil {
		return revenueReport{}, err
	}
	return revenueReport{
		GeneratedAt:    time.Now(),
		PremiumShops:   premium,
		PremiumCount:   len(premium),
		MonthlyRevenue: float64(len(premium)) * PremiumMonthlyFee,
	}, nil
}

// RevenueReport returns the subscription revenue summary as JSON.
func RevenueReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := buildRevenueReport(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build revenue report")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, report)
}

// ExportRevenuePDF renders the revenue report as a downloadable PDF.
// GET /api/admin/revenue/export
func ExportRevenuePDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report, err := buildRevenueReport(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build revenue report")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Monthly Revenue Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Premium shops: %d", report.PremiumCount))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Monthly revenue: $%.2f", report.MonthlyRevenue))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, "Shop")
	pdf.Cell(40, 8, "Rating")
	pdf.Cell(40, 8, "Fee")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, shop := range report.PremiumShops {
		pdf.Cell(100, 8, shop.Name)
		pdf.Cell(40, 8, fmt.Sprintf("%.1f", shop.Rating))
		pdf.Cell(40, 8, fmt.Sprintf("$%.2f", PremiumMonthlyFee))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=revenue-"+report.GeneratedAt.Format("2006-01")+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
