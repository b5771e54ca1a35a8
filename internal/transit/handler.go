package transit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/advisory"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

type Handler struct {
	store    *ledger.Store
	advisory advisory.Service
}

func NewHandler(store *ledger.Store, svc advisory.Service) *Handler {
	return &Handler{store: store, advisory: svc}
}

type ReportRequest struct {
	Description string          `json:"description" binding:"required"`
	Provider    ledger.Provider `json:"provider"`
	Title       string          `json:"title"`
}

type PlanTripRequest struct {
	Query string `json:"query" binding:"required"`
}

// ListAlerts godoc
// @Summary      Live transit alert feed
// @Description  Official notices and user reports, newest first.
// @Tags         transit
// @Produce      json
// @Success      200  {array}  ledger.TransitAlert
// @Router       /transit/alerts [get]
func (h *Handler) ListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Alerts())
}

// ReportAlert godoc
// @Summary      Report a disruption
// @Description  Classifies the description into a category and publishes the report to the live feed.
// @Tags         transit
// @Accept       json
// @Produce      json
// @Param        body  body      ReportRequest  true  "Report"
// @Success      201   {object}  ledger.TransitAlert
// @Failure      400   {object}  api.ErrorResponse
// @Router       /transit/alerts/report [post]
func (h *Handler) ReportAlert(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	category, err := h.advisory.Categorize(c.Request.Context(), req.Description)
	if err != nil {
		// The advisory service degrades internally; this is belt and braces.
		category = ledger.CategoryOther
	}

	title := req.Title
	if title == "" {
		title = "Commuter report"
	}

	alert, err := h.store.AddAlert(ledger.AlertUserReport, req.Provider, category, title, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.RecordAlert(string(alert.Type), string(alert.Category))
	logger.Info("User report published", "alert_id", alert.ID, "category", string(alert.Category))
	c.JSON(http.StatusCreated, alert)
}

// PlanTrip godoc
// @Summary      Plan a journey
// @Description  Asks the advisory service for up to three route options across the supported operators. Falls back to canned routes when the AI endpoint is unavailable.
// @Tags         transit
// @Accept       json
// @Produce      json
// @Param        body  body      PlanTripRequest  true  "Free-form journey query"
// @Success      200   {array}   advisory.RouteOption
// @Failure      400   {object}  api.ErrorResponse
// @Router       /transit/plan [post]
func (h *Handler) PlanTrip(c *gin.Context) {
	var req PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	routes, err := h.advisory.PlanTrip(c.Request.Context(), req.Query)
	if err != nil || len(routes) == 0 {
		// Never fail the planner on advisory trouble.
		static := advisory.NewStatic()
		routes, _ = static.PlanTrip(c.Request.Context(), req.Query)
	}

	c.JSON(http.StatusOK, routes)
}
