package loyalty

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

// Notifier delivers a message to a trusted contact. Delivery is queued
// and best effort; the Bonsella bonus is awarded either way.
type Notifier interface {
	SendDisruptionAlert(ctx context.Context, to, contact, userName, notice string) error
}

type Handler struct {
	store    *ledger.Store
	notifier Notifier
}

func NewHandler(store *ledger.Store, notifier Notifier) *Handler {
	return &Handler{store: store, notifier: notifier}
}

type NotifyContactRequest struct {
	ContactName  string `json:"contact_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	Message      string `json:"message"`
}

type ChallengeStatus struct {
	Challenge ledger.Challenge `json:"challenge"`
	Current   int64            `json:"current"`
	Completed bool             `json:"completed"`
}

type SummaryResponse struct {
	Points int                  `json:"points"`
	Events []ledger.LoyaltyEvent `json:"events"`
}

// GetSummary godoc
// @Summary      Bonsella points and history
// @Tags         loyalty
// @Produce      json
// @Success      200  {object}  SummaryResponse
// @Router       /loyalty [get]
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, SummaryResponse{
		Points: h.store.User().LoyaltyPoints,
		Events: h.store.LoyaltyEvents(),
	})
}

// ListChallenges godoc
// @Summary      List challenges with progress
// @Tags         loyalty
// @Produce      json
// @Success      200  {array}  ChallengeStatus
// @Router       /loyalty/challenges [get]
func (h *Handler) ListChallenges(c *gin.Context) {
	progress := make(map[string]ledger.ChallengeProgress)
	for _, p := range h.store.ChallengeProgress() {
		progress[p.ChallengeID] = p
	}

	challenges := h.store.Challenges()
	statuses := make([]ChallengeStatus, 0, len(challenges))
	for _, ch := range challenges {
		p := progress[ch.ID]
		statuses = append(statuses, ChallengeStatus{
			Challenge: ch,
			Current:   p.Current,
			Completed: p.Completed,
		})
	}

	c.JSON(http.StatusOK, statuses)
}

// ListRewards godoc
// @Summary      List redeemable rewards
// @Tags         loyalty
// @Produce      json
// @Success      200  {array}  ledger.Reward
// @Router       /loyalty/rewards [get]
func (h *Handler) ListRewards(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Rewards())
}

// RedeemReward godoc
// @Summary      Redeem a reward
// @Description  Deducts the point cost and applies the reward value, for vouchers a credit to the virtual card.
// @Tags         loyalty
// @Produce      json
// @Param        rewardID  path      string  true  "Reward ID"
// @Success      200       {object}  gin.H
// @Failure      402       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /loyalty/rewards/{rewardID}/redeem [post]
func (h *Handler) RedeemReward(c *gin.Context) {
	rewardID := c.Param("rewardID")

	reward, err := h.store.RedeemReward(rewardID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, ledger.ErrInsufficientPoints):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Not enough Bonsella points"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	metrics.RecordRedemption(reward.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Reward redeemed",
		"reward":  reward,
		"points":  h.store.User().LoyaltyPoints,
	})
}

// NotifyContact godoc
// @Summary      Notify a trusted contact
// @Description  Queues a message to a trusted contact about a delayed journey and awards the fixed 10 point Bonsella bonus.
// @Tags         loyalty
// @Accept       json
// @Produce      json
// @Param        body  body      NotifyContactRequest  true  "Contact"
// @Success      200   {object}  gin.H
// @Failure      400   {object}  api.ErrorResponse
// @Router       /loyalty/notify-contact [post]
func (h *Handler) NotifyContact(c *gin.Context) {
	var req NotifyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact_name and a valid contact_email are required"})
		return
	}

	user := h.store.User()
	notice := req.Message
	if notice == "" {
		notice = user.FullName + "'s trip is running late. They wanted you to know."
	}

	event := h.store.NotifyContact()

	if h.notifier != nil {
		if err := h.notifier.SendDisruptionAlert(c.Request.Context(), req.ContactEmail, req.ContactName, user.FullName, notice); err != nil {
			logger.Error("Failed to queue contact notification", "contact", req.ContactName, "err", err.Error())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact notified",
		"event":   event,
		"points":  h.store.User().LoyaltyPoints,
	})
}
