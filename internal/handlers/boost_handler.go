package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fulizaboost/boost-service/internal/cache"
	"github.com/fulizaboost/boost-service/internal/config"
	"github.com/fulizaboost/boost-service/internal/events"
	"github.com/fulizaboost/boost-service/internal/interfaces"
	"github.com/fulizaboost/boost-service/internal/models"
	"github.com/fulizaboost/boost-service/internal/payhero"
	"github.com/fulizaboost/boost-service/internal/phone"
	"github.com/fulizaboost/boost-service/internal/telemetry"
)

const dateLayout = "2006-01-02"

type BoostHandler struct {
	repo    interfaces.BoostRepository
	gateway *payhero.Client
	reports *cache.ReportCache
	events  *events.Publisher
	cfg     *config.Config
}

func NewBoostHandler(repo interfaces.BoostRepository, gateway *payhero.Client,
	reports *cache.ReportCache, publisher *events.Publisher, cfg *config.Config) *BoostHandler {
	return &BoostHandler{
		repo:    repo,
		gateway: gateway,
		reports: reports,
		events:  publisher,
		cfg:     cfg,
	}
}

func (h *BoostHandler) CreateBoost(c *gin.Context) {
	var req models.CreateBoostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boost := models.Boost{
		IdentificationNumber: req.IdentificationNumber,
		Amount:               req.Amount,
		Fee:                  req.Fee,
		Paid:                 false,
	}

	if err := h.repo.Create(c.Request.Context(), &boost); err != nil {
		telemetry.Logger.Error("Failed to save boost", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create boost"})
		return
	}

	telemetry.Logger.Info("Boost created",
		zap.Int64("boost_id", boost.ID),
		zap.String("identification_number", boost.IdentificationNumber),
	)

	c.JSON(http.StatusOK, boost)
}

func (h *BoostHandler) GetAllBoosts(c *gin.Context) {
	boosts, err := h.repo.List(c.Request.Context())
	if err != nil {
		telemetry.Logger.Error("Failed to list boosts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boosts"})
		return
	}

	c.JSON(http.StatusOK, boosts)
}

func (h *BoostHandler) GetBoostsByIdentificationNumber(c *gin.Context) {
	idNum := c.Param("identificationNumber")

	boosts, err := h.repo.GetByIdentificationNumber(c.Request.Context(), idNum)
	if err != nil {
		telemetry.Logger.Error("Failed to fetch boosts by identification number",
			zap.String("identification_number", idNum),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boosts"})
		return
	}

	c.JSON(http.StatusOK, boosts)
}

func (h *BoostHandler) GetBoostByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid boost id"})
		return
	}

	boost, err := h.repo.GetByID(c.Request.Context(), id)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boost not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boost"})
		return
	}

	c.JSON(http.StatusOK, boost)
}

func (h *BoostHandler) DeleteBoost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid boost id"})
		return
	}

	err = h.repo.Delete(c.Request.Context(), id)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boost not found"})
		return
	}
	if err != nil {
		telemetry.Logger.Error("Failed to delete boost", zap.Int64("boost_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete boost"})
		return
	}

	c.String(http.StatusOK, "Boost deleted successfully")
}

func (h *BoostHandler) PayBoostFee(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	normalized, err := phone.Normalize(req.Phone)
	if err != nil {
		telemetry.PaymentsInitiated.WithLabelValues("invalid_phone").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = "Customer"
	}

	reference := "BOOST-" + uuid.New().String()

	// Link the reference to the boost before calling the gateway so the
	// callback can find it. Without boost_id the initiation still goes
	// through, but the callback will have nothing to reconcile against.
	if req.BoostID != 0 {
		err := h.repo.SetReference(ctx, req.BoostID, reference)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Boost not found"})
			return
		}
		if err != nil {
			h.payError(c, err)
			return
		}
	}

	telemetry.Logger.Info("Initiating payment",
		zap.String("phone", normalized),
		zap.String("reference", reference),
		zap.Int64("boost_id", req.BoostID),
	)

	body, err := h.gateway.Initiate(ctx, payhero.InitiateRequest{
		Amount:       req.Fee,
		Phone:        normalized,
		CustomerName: customerName,
		Reference:    reference,
	})
	if apiErr, ok := err.(*payhero.APIError); ok {
		telemetry.PaymentsInitiated.WithLabelValues("gateway_error").Inc()
		telemetry.Logger.Warn("PayHero rejected payment",
			zap.Int("status", apiErr.Status),
			zap.String("reference", reference),
		)
		c.JSON(apiErr.Status, gin.H{
			"success": false,
			"error":   "PayHero API error",
			"details": apiErr.Body,
		})
		return
	}
	if err != nil {
		telemetry.PaymentsInitiated.WithLabelValues("error").Inc()
		h.payError(c, err)
		return
	}

	telemetry.PaymentsInitiated.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Payment initiated successfully",
		"data":      body,
		"reference": reference,
	})
}

// payError reports an unexpected pay failure. The raw message is only
// returned to the client when compat mode is on; otherwise it stays in the
// logs.
func (h *BoostHandler) payError(c *gin.Context, err error) {
	telemetry.Logger.Error("Payment initiation failed", zap.Error(err))

	msg := "Payment initiation failed"
	if h.cfg != nil && h.cfg.CompatErrors {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}

func (h *BoostHandler) HandleCallback(c *gin.Context) {
	ctx := c.Request.Context()

	// The gateway is always acknowledged, even when the payload is
	// unusable or the reference is unknown.
	var req models.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Warn("Unreadable callback payload", zap.Error(err))
		c.String(http.StatusOK, "Callback received")
		return
	}

	if !req.Success {
		telemetry.CallbacksReceived.WithLabelValues("failed").Inc()
		c.String(http.StatusOK, "Callback received")
		return
	}

	boost, err := h.repo.GetByReference(ctx, req.Reference)
	if err != nil {
		telemetry.Logger.Error("Failed to look up boost by reference",
			zap.String("reference", req.Reference),
			zap.Error(err),
		)
		c.String(http.StatusOK, "Callback received")
		return
	}
	if boost == nil {
		telemetry.CallbacksReceived.WithLabelValues("unknown_reference").Inc()
		telemetry.Logger.Warn("Callback for unknown reference", zap.String("reference", req.Reference))
		c.String(http.StatusOK, "Callback received")
		return
	}

	paidAt := time.Now()
	if err := h.repo.MarkPaid(ctx, boost.ID, paidAt); err != nil {
		telemetry.Logger.Error("Failed to mark boost paid",
			zap.Int64("boost_id", boost.ID),
			zap.Error(err),
		)
		c.String(http.StatusOK, "Callback received")
		return
	}

	telemetry.CallbacksReceived.WithLabelValues("paid").Inc()
	telemetry.Logger.Info("Boost marked paid",
		zap.Int64("boost_id", boost.ID),
		zap.String("reference", req.Reference),
	)

	if err := h.events.PublishBoostPaid(ctx, events.BoostPaidEvent{
		BoostID:              boost.ID,
		IdentificationNumber: boost.IdentificationNumber,
		Fee:                  boost.Fee,
		Reference:            req.Reference,
		PaidAt:               paidAt,
	}); err != nil {
		telemetry.Logger.Error("Failed to publish boost.paid event",
			zap.Int64("boost_id", boost.ID),
			zap.Error(err),
		)
	}

	c.String(http.StatusOK, "Callback received")
}

func (h *BoostHandler) GetPaidBoosts(c *gin.Context) {
	ctx := c.Request.Context()

	date := c.Query("date")
	if date == "" {
		boosts, err := h.repo.ListPaid(ctx)
		if err != nil {
			telemetry.Logger.Error("Failed to list paid boosts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paid boosts"})
			return
		}
		c.JSON(http.StatusOK, boosts)
		return
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	from, to := models.DayWindow(day)
	boosts, err := h.repo.ListPaidBetween(ctx, from, to)
	if err != nil {
		telemetry.Logger.Error("Failed to list paid boosts", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paid boosts"})
		return
	}

	c.JSON(http.StatusOK, boosts)
}

func (h *BoostHandler) GetTotalFees(c *gin.Context) {
	ctx := c.Request.Context()

	date := c.Query("date")
	day := "all"
	if date != "" {
		day = date
	}

	if cached, ok := h.reports.Get(ctx, cache.TotalKey(day)); ok {
		if total, err := decimal.NewFromString(cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"total": total})
			return
		}
	}

	var total decimal.Decimal
	var err error
	if date == "" {
		total, err = h.repo.SumFees(ctx)
	} else {
		var parsed time.Time
		parsed, err = time.Parse(dateLayout, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		from, to := models.DayWindow(parsed)
		total, err = h.repo.SumFeesBetween(ctx, from, to)
	}
	if err != nil {
		telemetry.Logger.Error("Failed to sum fees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch total"})
		return
	}

	h.reports.Set(ctx, cache.TotalKey(day), total.String())
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *BoostHandler) GetPaidCount(c *gin.Context) {
	ctx := c.Request.Context()

	date := c.Query("date")
	day := "all"
	if date != "" {
		day = date
	}

	if cached, ok := h.reports.Get(ctx, cache.CountKey(day)); ok {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			c.JSON(http.StatusOK, gin.H{"count": count})
			return
		}
	}

	var count int64
	var err error
	if date == "" {
		count, err = h.repo.CountPaid(ctx)
	} else {
		var parsed time.Time
		parsed, err = time.Parse(dateLayout, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		from, to := models.DayWindow(parsed)
		count, err = h.repo.CountPaidBetween(ctx, from, to)
	}
	if err != nil {
		telemetry.Logger.Error("Failed to count paid boosts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch count"})
		return
	}

	h.reports.Set(ctx, cache.CountKey(day), strconv.FormatInt(count, 10))
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *BoostHandler) FilterPaidBoosts(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
		return
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
		return
	}

	from, to := models.RangeWindow(start, end)
	boosts, err := h.repo.ListPaidBetween(c.Request.Context(), from, to)
	if err != nil {
		telemetry.Logger.Error("Failed to filter paid boosts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paid boosts"})
		return
	}

	c.JSON(http.StatusOK, boosts)
}
