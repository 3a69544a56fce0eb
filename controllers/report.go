// controllers/report.go
package controllers

import (
	"catering-backend/models"
	"catering-backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportController handles all reporting functions
type ReportController struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportController(db *gorm.DB, now func() time.Time) *ReportController {
	if now == nil {
		now = time.Now
	}
	return &ReportController{db: db, now: now}
}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64           `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue float64           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    float64           `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopPackages           []PackageSummary  `json:"topPackages"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type PackageSummary struct {
	Name     string  `json:"name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type CustomerSummary struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Bookings int     `json:"bookings"`
	Spent    float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalBookings   int     `json:"totalBookings"`
	TotalCustomers  int     `json:"totalCustomers"`
	AvgGuests       float64 `json:"avgGuests"`
	AvgBookingValue float64 `json:"avgBookingValue"`
}

// GetReportAnalytics returns collected revenue, growth and rankings.
// Periods are matched on the event date.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	db := rc.db.WithContext(c.Request.Context())

	now := rc.now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(db, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthStart := firstOfMonth.AddDate(0, -1, 0)
	lastMonthRevenue, err := rc.getRevenue(db, lastMonthStart, firstOfMonth.AddDate(0, 0, -1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	quarterStart := rc.getQuarterStart(now)
	currentQuarterRevenue, err := rc.getRevenue(db, quarterStart, rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(db, quarterStart.AddDate(0, -3, 0), quarterStart.AddDate(0, 0, -1))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(db,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 0, 0, 0, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(db,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 0, 0, 0, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	// Calculate growth percentages
	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	topPackages, err := rc.getTopPackages(db, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top packages")
		return
	}

	topCustomers, err := rc.getTopCustomers(db, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	quickStats, err := rc.getQuickStatistics(db)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopPackages:           topPackages,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

// getRevenue sums collected payments for events dated in [start, end].
func (rc *ReportController) getRevenue(db *gorm.DB, start, end time.Time) (float64, error) {
	var total float64
	err := db.Table("payments").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.date BETWEEN ? AND ?", dateKey(start), dateKey(end)).
		Select("COALESCE(SUM(payments.paid_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopPackages(db *gorm.DB, limit int) ([]PackageSummary, error) {
	packages := []PackageSummary{}

	err := db.Table("bookings").
		Select("bookings.package as name, COUNT(bookings.id) as bookings, COALESCE(SUM(payments.paid_amount), 0) as revenue").
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.package <> '' AND bookings.status NOT IN ?", []string{models.BookingRejected, models.BookingCancelled}).
		Group("bookings.package").
		Order("revenue DESC").
		Limit(limit).
		Scan(&packages).Error

	return packages, err
}

func (rc *ReportController) getTopCustomers(db *gorm.DB, limit int) ([]CustomerSummary, error) {
	customers := []CustomerSummary{}

	err := db.Table("bookings").
		Select("MAX(bookings.customer) as name, bookings.email, COUNT(bookings.id) as bookings, COALESCE(SUM(payments.paid_amount), 0) as spent").
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.status NOT IN ?", []string{models.BookingRejected, models.BookingCancelled}).
		Group("bookings.email").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics(db *gorm.DB) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalBookings int64
	if err := db.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
		return stats, err
	}
	stats.TotalBookings = int(totalBookings)

	var totalCustomers int64
	if err := db.Model(&models.User{}).
		Where("role = ?", utils.RoleCustomer).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	if err := db.Model(&models.Booking{}).
		Select("COALESCE(AVG(guests), 0)").
		Scan(&stats.AvgGuests).Error; err != nil {
		return stats, err
	}

	// Average Booking Value
	var totalValue float64
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalValue).Error; err != nil {
		return stats, err
	}

	if stats.TotalBookings > 0 {
		stats.AvgBookingValue = totalValue / float64(stats.TotalBookings)
	}

	return stats, nil
}
