package controllers

import (
	"bytes"
	"catering-backend/services"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	exports *services.ExportService
	log     *zap.Logger
	now     func() time.Time
}

func NewExportController(exports *services.ExportService, log *zap.Logger, now func() time.Time) *ExportController {
	if now == nil {
		now = time.Now
	}
	return &ExportController{exports: exports, log: log, now: now}
}

// Bookings streams every booking and payment as an xlsx workbook.
func (ec *ExportController) Bookings(c *gin.Context) {
	// Buffered so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := ec.exports.WriteBookingsWorkbook(c.Request.Context(), &buf); err != nil {
		respondServiceError(c, ec.log, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", ec.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
