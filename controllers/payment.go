package controllers

import (
	"catering-backend/billing"
	"catering-backend/services"
	"catering-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdatePaymentInput defines the expected JSON structure for editing a payment.
// Omitted fields are left unchanged.
type UpdatePaymentInput struct {
	TotalAmount *billing.Amount `json:"totalAmount"`
	PaidAmount  *billing.Amount `json:"paidAmount"`
	Method      *string         `json:"method"`
	Notes       *string         `json:"notes"`
}

func (in UpdatePaymentInput) empty() bool {
	return in.TotalAmount == nil && in.PaidAmount == nil && in.Method == nil && in.Notes == nil
}

func amountValue(a *billing.Amount) *float64 {
	if a == nil {
		return nil
	}
	v := a.Float()
	return &v
}

type PaymentController struct {
	payments *services.PaymentService
	log      *zap.Logger
}

func NewPaymentController(payments *services.PaymentService, log *zap.Logger) *PaymentController {
	return &PaymentController{payments: payments, log: log}
}

// Preview shows the derived balance and status for unsaved amounts.
func (pc *PaymentController) Preview(c *gin.Context) {
	total := billing.ParseAmount(c.Query("totalAmount"))
	paid := billing.ParseAmount(c.Query("paidAmount"))
	c.JSON(http.StatusOK, pc.payments.Preview(total.Float(), paid.Float()))
}

func (pc *PaymentController) List(c *gin.Context) {
	payments, err := pc.payments.List(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (pc *PaymentController) Get(c *gin.Context) {
	payment, err := pc.payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (pc *PaymentController) Update(c *gin.Context) {
	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.empty() {
		utils.RespondWithError(c, http.StatusBadRequest, "No payment fields to update")
		return
	}

	payment, err := pc.payments.Update(c.Request.Context(), c.Param("id"), services.PaymentUpdate{
		TotalAmount: amountValue(input.TotalAmount),
		PaidAmount:  amountValue(input.PaidAmount),
		Method:      input.Method,
		Notes:       input.Notes,
	})
	if err != nil {
		respondServiceError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Reconcile runs the mirror reconciliation immediately.
func (pc *PaymentController) Reconcile(c *gin.Context) {
	report, err := pc.payments.Reconcile(c.Request.Context())
	if err != nil {
		pc.log.Error("manual reconciliation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation did not complete", "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}
