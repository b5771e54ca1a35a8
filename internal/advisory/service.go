// Package advisory wraps the external generative-AI endpoint used for
// trip planning, report classification and live journey updates. The
// ledger treats everything returned here as opaque advisory data: it
// never mutates balances or trips on the strength of it.
package advisory

import (
	"context"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

type RouteStep struct {
	Provider    ledger.Provider `json:"provider"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Instruction string          `json:"instruction"`
}

type RouteOption struct {
	Title      string      `json:"title"`
	Tag        string      `json:"tag"` // Recommended, Cheapest or Fastest
	TotalFare  float64     `json:"totalFare"`
	TravelTime string      `json:"travelTime"`
	Steps      []RouteStep `json:"steps"`
}

// JourneyUpdate is the advisory response to a disruption on an open
// trip. AlternativeRoute and NotificationMessage are optional.
type JourneyUpdate struct {
	UserMessage         string       `json:"userMessage"`
	AlternativeRoute    *RouteOption `json:"alternativeRoute,omitempty"`
	NotificationMessage string       `json:"notificationMessage,omitempty"`
}

// Service is the advisory capability. Implementations must degrade to
// static content rather than surface failures: callers never see an
// advisory error as a user-facing crash.
type Service interface {
	PlanTrip(ctx context.Context, query string) ([]RouteOption, error)
	Categorize(ctx context.Context, description string) (ledger.ReportCategory, error)
	JourneyUpdate(ctx context.Context, trip ledger.Trip, alert ledger.TransitAlert) (JourneyUpdate, error)
}

// New picks the Gemini-backed service when an API key is configured
// and the static fallback otherwise.
func New(apiKey, model string) Service {
	if apiKey == "" {
		return NewStatic()
	}
	return NewGemini(apiKey, model)
}
