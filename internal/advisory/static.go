package advisory

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

// Static serves canned advisory content. It backs the service when no
// API key is configured and catches the fall when the live endpoint
// errors.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

var mockTripPlan = []RouteOption{
	{
		Title:      "Gautrain + Rea Vaya",
		Tag:        "Recommended",
		TotalFare:  52.50,
		TravelTime: "55 min",
		Steps: []RouteStep{
			{Provider: ledger.ProviderGautrain, From: "Sandton Gautrain Station", To: "Park Station", Instruction: "Take the southbound Gautrain to Park Station."},
			{Provider: ledger.ProviderReaVaya, From: "Park Station", To: "Library Gardens", Instruction: "Board the T1 trunk route towards Thokoza Park."},
		},
	},
	{
		Title:      "Metrobus direct",
		Tag:        "Cheapest",
		TotalFare:  18.00,
		TravelTime: "1 h 20 min",
		Steps: []RouteStep{
			{Provider: ledger.ProviderMetrobus, From: "Gandhi Square", To: "Rosebank", Instruction: "Take route 77 from Gandhi Square."},
		},
	},
}

func (s *Static) PlanTrip(ctx context.Context, query string) ([]RouteOption, error) {
	return append([]RouteOption(nil), mockTripPlan...), nil
}

// Categorize falls back to the keyword heuristic the app shipped with.
func (s *Static) Categorize(ctx context.Context, description string) (ledger.ReportCategory, error) {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "late") || strings.Contains(lower, "delay"):
		return ledger.CategoryDelay, nil
	case strings.Contains(lower, "crowd") || strings.Contains(lower, "full"):
		return ledger.CategoryCrowded, nil
	}
	return ledger.CategoryOther, nil
}

func (s *Static) JourneyUpdate(ctx context.Context, trip ledger.Trip, alert ledger.TransitAlert) (JourneyUpdate, error) {
	return JourneyUpdate{
		UserMessage: fmt.Sprintf(
			"Heads up: %s reports \"%s\" on your %s trip from %s. Allow extra travel time or check the planner for another route.",
			trip.Provider, alert.Title, trip.Provider, trip.From,
		),
		NotificationMessage: fmt.Sprintf("Running late from %s due to a %s disruption.", trip.From, trip.Provider),
	}, nil
}
