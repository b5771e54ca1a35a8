package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

type Handler struct {
	store *ledger.Store
}

func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

type TopUpRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	CardID      string `json:"card_id"`
}

type LinkCardRequest struct {
	Provider   ledger.Provider `json:"provider" binding:"required"`
	CardNumber string          `json:"card_number" binding:"required"`
	Nickname   string          `json:"nickname" binding:"required"`
}

type ThemeRequest struct {
	Theme ledger.CardTheme `json:"theme" binding:"required"`
}

type HolderNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

type WalletResponse struct {
	VirtualCard   ledger.VirtualCard   `json:"virtual_card"`
	PhysicalCards []ledger.PhysicalCard `json:"physical_cards"`
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Returns the virtual card and all linked physical cards.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  WalletResponse
// @Router       /wallet [get]
func (h *Handler) GetWallet(c *gin.Context) {
	c.JSON(http.StatusOK, WalletResponse{
		VirtualCard:   h.store.VirtualCard(),
		PhysicalCards: h.store.PhysicalCards(),
	})
}

// TopUp godoc
// @Summary      Add funds
// @Description  Tops up the virtual card, or a linked physical card when card_id is given. Earns 1 point per R10.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      TopUpRequest  true  "Top-up"
// @Success      200   {object}  gin.H
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /wallet/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents must be positive"})
		return
	}

	tx, err := h.store.AddFunds(req.AmountCents, req.CardID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount_cents must be positive"})
		case errors.Is(err, ledger.ErrCardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to top up wallet"})
		}
		return
	}

	metrics.RecordTopUp()
	c.JSON(http.StatusOK, gin.H{
		"message":     "wallet recharged",
		"transaction": tx,
		"wallet": WalletResponse{
			VirtualCard:   h.store.VirtualCard(),
			PhysicalCards: h.store.PhysicalCards(),
		},
	})
}

// ListTransactions godoc
// @Summary      List transactions
// @Tags         wallet
// @Produce      json
// @Param        limit   query     int  false  "Max rows"     default(50)
// @Param        offset  query     int  false  "Rows to skip" default(0)
// @Success      200     {array}   ledger.Transaction
// @Router       /wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs := h.store.Transactions()
	if offset < 0 {
		offset = 0
	}
	if offset > len(txs) {
		offset = len(txs)
	}
	txs = txs[offset:]
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}

	c.JSON(http.StatusOK, txs)
}

// LinkCard godoc
// @Summary      Link a physical transit card
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      LinkCardRequest  true  "Card"
// @Success      201   {object}  ledger.PhysicalCard
// @Failure      400   {object}  api.ErrorResponse
// @Router       /wallet/cards [post]
func (h *Handler) LinkCard(c *gin.Context) {
	var req LinkCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider, card_number and nickname are required"})
		return
	}

	card, err := h.store.LinkCard(req.Provider, req.CardNumber, req.Nickname)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, card)
}

// UnlinkCard godoc
// @Summary      Unlink a physical transit card
// @Tags         wallet
// @Produce      json
// @Param        cardID  path      string  true  "Card ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /wallet/cards/{cardID} [delete]
func (h *Handler) UnlinkCard(c *gin.Context) {
	cardID := c.Param("cardID")

	if err := h.store.UnlinkCard(cardID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card unlinked"})
}

// ListCards godoc
// @Summary      List linked physical cards
// @Tags         wallet
// @Produce      json
// @Success      200  {array}  ledger.PhysicalCard
// @Router       /wallet/cards [get]
func (h *Handler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.PhysicalCards())
}

// UpdateTheme godoc
// @Summary      Change the virtual card theme
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      ThemeRequest  true  "Theme"
// @Success      200   {object}  ledger.VirtualCard
// @Failure      400   {object}  api.ErrorResponse
// @Router       /wallet/card/theme [put]
func (h *Handler) UpdateTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme is required"})
		return
	}

	if err := h.store.UpdateCardTheme(req.Theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown card theme"})
		return
	}

	c.JSON(http.StatusOK, h.store.VirtualCard())
}

// UpdateHolderName godoc
// @Summary      Change the card holder name
// @Description  Renames both the embossed card name and the user profile.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      HolderNameRequest  true  "Name"
// @Success      200   {object}  ledger.VirtualCard
// @Failure      400   {object}  api.ErrorResponse
// @Router       /wallet/card/holder [put]
func (h *Handler) UpdateHolderName(c *gin.Context) {
	var req HolderNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	if err := h.store.UpdateCardHolderName(req.FullName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name must not be empty"})
		return
	}

	c.JSON(http.StatusOK, h.store.VirtualCard())
}
