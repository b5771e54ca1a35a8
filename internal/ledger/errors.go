package ledger

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidCardNumber   = errors.New("card number must be exactly 4 digits")
	ErrEmptyNickname       = errors.New("nickname must not be empty")
	ErrInvalidProvider     = errors.New("unknown transport provider")
	ErrInvalidTheme        = errors.New("unknown card theme")
	ErrInvalidTicketType   = errors.New("unknown ticket type")
	ErrInvalidCategory     = errors.New("unknown report category")
	ErrEmptyLocation       = errors.New("location must not be empty")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrCardNotFound        = errors.New("card not found")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientPoints  = errors.New("not enough points")
	ErrTripNotOpen         = errors.New("trip is not open")
	ErrPinNotSet           = errors.New("pin not set")

	// ErrPaymentUnavailable is returned by EndTrip when no linked card
	// can cover the drawn fare. The trip stays open and can be ended
	// again once a card is funded.
	ErrPaymentUnavailable = errors.New("no card can cover the fare")
)
