package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/auth"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/logger"
)

type Handler struct {
	store *ledger.Store
}

func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

type PinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

type ProfileResponse struct {
	User   ledger.User `json:"user"`
	PinSet bool        `json:"pin_set"`
}

// CreateUser godoc
// @Summary      Create a fresh commuter profile
// @Description  Resets the session to a new seeded user with a fresh virtual card, R50 balance and a 100 point welcome bonus.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      CreateUserRequest  true  "New user"
// @Success      201   {object}  ledger.User
// @Failure      400   {object}  api.ErrorResponse
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	u, err := h.store.CreateNewUser(req.FullName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("New commuter profile created", "user_id", u.ID)
	c.JSON(http.StatusCreated, u)
}

// GetMe godoc
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  ProfileResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	u := h.store.User()
	c.JSON(http.StatusOK, ProfileResponse{User: u, PinSet: u.PinSet()})
}

// SetPin godoc
// @Summary      Set the wallet PIN
// @Description  Stores a 4 digit wallet PIN. The PIN is hashed before it touches the ledger.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      PinRequest  true  "PIN"
// @Success      200   {object}  api.MessageResponse
// @Failure      400   {object}  api.ErrorResponse
// @Router       /me/pin [post]
func (h *Handler) SetPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin is required"})
		return
	}

	if err := h.store.SetPin(req.Pin); err != nil {
		if errors.Is(err, auth.ErrInvalidPinFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must be exactly 4 digits"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set PIN"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN updated"})
}

// VerifyPin godoc
// @Summary      Verify the wallet PIN
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      PinRequest  true  "PIN"
// @Success      200   {object}  gin.H
// @Failure      401   {object}  gin.H
// @Failure      403   {object}  api.ErrorResponse
// @Router       /me/pin/verify [post]
func (h *Handler) VerifyPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin is required"})
		return
	}

	ok, err := h.store.VerifyPin(req.Pin)
	if err != nil {
		if errors.Is(err, ledger.ErrPinNotSet) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No PIN has been set for this wallet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify PIN"})
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
