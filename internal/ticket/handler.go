package ticket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/api"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

type Handler struct {
	store *ledger.Store
}

func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

type PurchaseRequest struct {
	TicketType ledger.TicketType   `json:"ticket_type" binding:"required" validate:"required,oneof=single return weekly monthly"`
	From       string              `json:"from" binding:"required" validate:"required"`
	To         string              `json:"to" binding:"required" validate:"required"`
	FareCents  int64               `json:"fare_cents" binding:"required" validate:"required,gte=1"`
	Source     ledger.TicketSource `json:"source" validate:"omitempty,oneof=App Counter"`
}

// Purchase godoc
// @Summary      Buy a PRASA train ticket
// @Description  Charges the virtual card, records the debit transaction and awards 1 point per R2 of fare. QR code and validity window depend on the ticket type.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      PurchaseRequest  true  "Ticket"
// @Success      201   {object}  ledger.PrasaTicket
// @Failure      400   {object}  api.ErrorResponse
// @Failure      402   {object}  api.ErrorResponse
// @Router       /tickets [post]
func (h *Handler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_type, from, to and fare_cents are required"})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	source := req.Source
	if source == "" {
		source = ledger.SourceApp
	}

	t, err := h.store.PurchaseTicket(req.TicketType, req.From, req.To, req.FareCents, source)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient balance on the virtual card"})
		case errors.Is(err, ledger.ErrInvalidTicketType),
			errors.Is(err, ledger.ErrInvalidAmount),
			errors.Is(err, ledger.ErrEmptyLocation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase ticket"})
		}
		return
	}

	metrics.RecordTicketSale(string(t.TicketType), string(t.Source))
	c.JSON(http.StatusCreated, t)
}

// ListTickets godoc
// @Summary      List PRASA tickets
// @Description  Newest first. Tickets past their validity window are returned with status expired.
// @Tags         tickets
// @Produce      json
// @Success      200  {array}  ledger.PrasaTicket
// @Router       /tickets [get]
func (h *Handler) ListTickets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Tickets())
}
