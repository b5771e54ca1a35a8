package trip

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/advisory"
	"github.com/Shoxx1211/Mzansipass/internal/fare"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

// Handler drives the tap-in/tap-out flow. Open trips are not part of
// ledger history yet, so the handler keeps them here until the end tap
// closes them. The disruption watcher tracks the same set.
type Handler struct {
	store   *ledger.Store
	watcher *advisory.Watcher

	mu   sync.Mutex
	open map[string]ledger.Trip
}

func NewHandler(store *ledger.Store, watcher *advisory.Watcher) *Handler {
	return &Handler{
		store:   store,
		watcher: watcher,
		open:    make(map[string]ledger.Trip),
	}
}

type StartTripRequest struct {
	Provider ledger.Provider `json:"provider" binding:"required"`
	From     string          `json:"from" binding:"required"`
}

type EndTripRequest struct {
	To string `json:"to" binding:"required"`
}

// StartTrip godoc
// @Summary      Tap in
// @Description  Opens a trip. Nothing is charged and nothing enters trip history until the end tap.
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        body  body      StartTripRequest  true  "Tap-in"
// @Success      201   {object}  ledger.Trip
// @Failure      400   {object}  api.ErrorResponse
// @Router       /trips/start [post]
func (h *Handler) StartTrip(c *gin.Context) {
	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider and from are required"})
		return
	}

	open, err := h.store.StartTrip(req.Provider, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	h.open[open.ID] = open
	h.mu.Unlock()

	if h.watcher != nil {
		h.watcher.Track(open)
	}

	logger.Info("Trip started", "trip_id", open.ID, "provider", string(open.Provider))
	c.JSON(http.StatusCreated, open)
}

// EndTrip godoc
// @Summary      Tap out
// @Description  Closes an open trip, charges the fare to the virtual card or a covering physical card and awards loyalty points. When no card can cover the fare the trip stays open and 402 is returned.
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        tripID  path      string          true  "Open trip ID"
// @Param        body    body      EndTripRequest  true  "Tap-out"
// @Success      200     {object}  ledger.Trip
// @Failure      400     {object}  api.ErrorResponse
// @Failure      402     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /trips/{tripID}/end [post]
func (h *Handler) EndTrip(c *gin.Context) {
	tripID := c.Param("tripID")

	var req EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is required"})
		return
	}

	h.mu.Lock()
	open, exists := h.open[tripID]
	h.mu.Unlock()
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open trip with this ID"})
		return
	}

	closed, err := h.store.EndTrip(open, req.To)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrPaymentUnavailable):
			metrics.RecordTrip(string(open.Provider), "payment_unavailable")
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":   "No card can cover the fare. Top up and tap out again.",
				"trip_id": open.ID,
			})
		case errors.Is(err, ledger.ErrEmptyLocation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be empty"})
		case errors.Is(err, ledger.ErrTripNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "Trip is not open"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end trip"})
		}
		return
	}

	h.mu.Lock()
	delete(h.open, tripID)
	h.mu.Unlock()

	if h.watcher != nil {
		h.watcher.Untrack(tripID)
	}

	metrics.RecordTrip(string(closed.Provider), "completed")
	logger.Info("Trip completed", "trip_id", closed.ID, "fare_cents", closed.FareCents, "card_id", closed.CardID)
	c.JSON(http.StatusOK, closed)
}

// ListTrips godoc
// @Summary      List trip history
// @Description  Completed trips, newest first. Open trips are not included.
// @Tags         trips
// @Produce      json
// @Success      200  {array}  ledger.Trip
// @Router       /trips [get]
func (h *Handler) ListTrips(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Trips())
}

// GetAdvisory godoc
// @Summary      Poll disruption advisory for an open trip
// @Description  Returns the latest journey update issued by the disruption watcher, or 204 when the trip is running clean.
// @Tags         trips
// @Produce      json
// @Param        tripID  path      string  true  "Open trip ID"
// @Success      200     {object}  advisory.JourneyUpdate
// @Success      204     "No advisory"
// @Failure      404     {object}  api.ErrorResponse
// @Router       /trips/{tripID}/advisory [get]
func (h *Handler) GetAdvisory(c *gin.Context) {
	tripID := c.Param("tripID")

	h.mu.Lock()
	_, exists := h.open[tripID]
	h.mu.Unlock()
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open trip with this ID"})
		return
	}

	if h.watcher == nil {
		c.Status(http.StatusNoContent)
		return
	}

	update, ok := h.watcher.Update(tripID)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, update)
}

// QuoteFare godoc
// @Summary      Price a journey
// @Description  Deterministic fare quote per agency rules. Rea Vaya is distance based, Gautrain is a flat fare.
// @Tags         trips
// @Produce      json
// @Param        agency     query     string   true   "Agency"
// @Param        start_lat  query     number   false  "Start latitude"
// @Param        start_lng  query     number   false  "Start longitude"
// @Param        end_lat    query     number   false  "End latitude"
// @Param        end_lng    query     number   false  "End longitude"
// @Success      200        {object}  fare.Quote
// @Failure      400        {object}  api.ErrorResponse
// @Router       /fares/quote [get]
func (h *Handler) QuoteFare(c *gin.Context) {
	fctx := fare.Context{Agency: ledger.Provider(c.Query("agency"))}
	fctx.StartLat, _ = strconv.ParseFloat(c.Query("start_lat"), 64)
	fctx.StartLng, _ = strconv.ParseFloat(c.Query("start_lng"), 64)
	fctx.EndLat, _ = strconv.ParseFloat(c.Query("end_lat"), 64)
	fctx.EndLng, _ = strconv.ParseFloat(c.Query("end_lng"), 64)

	quote, err := fare.Calculate(fctx)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}
