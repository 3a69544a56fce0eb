package controllers

import (
	"catering-backend/availability"
	"catering-backend/models"
	"catering-backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	StatusCounts     map[string]int64 `json:"statusCounts"`
	TotalBookings    int64            `json:"totalBookings"`
	RevenueCollected float64          `json:"revenueCollected"`
	Outstanding      float64          `json:"outstanding"`
	MonthlyBookings  int64            `json:"monthlyBookings"`
	UpcomingEvents   []UpcomingEvent  `json:"upcomingEvents"`
	RecentBookings   []RecentBooking  `json:"recentBookings"`
	AverageRating    float64          `json:"averageRating"`
	FeedbackCount    int64            `json:"feedbackCount"`
}

type UpcomingEvent struct {
	BookingID string `json:"bookingId"`
	Customer  string `json:"customer"`
	EventType string `json:"eventType"`
	Date      string `json:"date"`
	In        string `json:"in"` // e.g. "Tomorrow", "3 days"
}

type RecentBooking struct {
	BookingID string    `json:"bookingId"`
	Reference string    `json:"reference"`
	Customer  string    `json:"customer"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Received  string    `json:"received"` // e.g. "Today", "2 days ago"
}

type DashboardController struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardController takes a clock that reports time in the business timezone.
func NewDashboardController(db *gorm.DB, now func() time.Time) *DashboardController {
	if now == nil {
		now = time.Now
	}
	return &DashboardController{db: db, now: now}
}

func (dc *DashboardController) Overview(c *gin.Context) {
	overview, err := dc.build(dc.db.WithContext(c.Request.Context()))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (dc *DashboardController) build(db *gorm.DB) (*DashboardOverview, error) {
	now := dc.now()
	today := utils.BeginningOfDay(now)
	overview := &DashboardOverview{
		StatusCounts:   make(map[string]int64, len(models.BookingStatuses)),
		UpcomingEvents: []UpcomingEvent{},
		RecentBookings: []RecentBooking{},
	}

	// Totals per status
	for _, s := range models.BookingStatuses {
		overview.StatusCounts[s] = 0
	}
	var counts []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, row := range counts {
		overview.StatusCounts[row.Status] = row.Count
		overview.TotalBookings += row.Count
	}

	// Money, from the payment records rather than the booking mirror
	var money struct {
		Collected   float64
		Outstanding float64
	}
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(paid_amount), 0) as collected, COALESCE(SUM(balance), 0) as outstanding").
		Scan(&money).Error; err != nil {
		return nil, err
	}
	overview.RevenueCollected = money.Collected
	overview.Outstanding = money.Outstanding

	// This month's bookings, by event date
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	if err := db.Model(&models.Booking{}).
		Where("date BETWEEN ? AND ?", dateKey(first), dateKey(last)).
		Count(&overview.MonthlyBookings).Error; err != nil {
		return nil, err
	}

	// Next confirmed events
	var upcoming []models.Booking
	if err := db.Where("status = ? AND date > ?", models.BookingConfirmed, dateKey(today)).
		Order("date").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return nil, err
	}
	for _, b := range upcoming {
		event := UpcomingEvent{BookingID: b.ID, Customer: b.Customer, EventType: b.EventType, Date: b.Date}
		if y, m, d, ok := availability.ParseDate(b.Date); ok {
			event.In = utils.RelativeDay(utils.DaysBetween(today, time.Date(y, m, d, 0, 0, 0, 0, today.Location())))
		}
		overview.UpcomingEvents = append(overview.UpcomingEvents, event)
	}

	var recent []models.Booking
	if err := db.Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return nil, err
	}
	for _, b := range recent {
		overview.RecentBookings = append(overview.RecentBookings, RecentBooking{
			BookingID: b.ID,
			Reference: b.Reference,
			Customer:  b.Customer,
			Date:      b.Date,
			Status:    b.Status,
			CreatedAt: b.CreatedAt,
			Received:  utils.RelativeDay(utils.DaysBetween(today, b.CreatedAt.In(today.Location()))),
		})
	}

	var rating struct {
		Average float64
		Count   int64
	}
	if err := db.Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Scan(&rating).Error; err != nil {
		return nil, err
	}
	overview.AverageRating = rating.Average
	overview.FeedbackCount = rating.Count

	return overview, nil
}

func dateKey(t time.Time) string {
	return availability.Key(t.Year(), t.Month(), t.Day())
}
