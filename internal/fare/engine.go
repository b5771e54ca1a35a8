// Package fare is the centralised fare calculation engine. It is
// deterministic and stateless: same context in, same quote out.
package fare

import (
	"errors"
	"fmt"
	"math"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

var ErrUnsupportedAgency = errors.New("unsupported agency")

type Context struct {
	Agency   ledger.Provider `json:"agency"`
	StartLat float64         `json:"start_lat"`
	StartLng float64         `json:"start_lng"`
	EndLat   float64         `json:"end_lat"`
	EndLng   float64         `json:"end_lng"`
}

type Quote struct {
	AmountCents int64              `json:"amount_cents"`
	Currency    string             `json:"currency"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
}

// Calculate prices a journey for the given agency. Agencies without a
// published rule are an error, not a guess.
func Calculate(ctx Context) (Quote, error) {
	switch ctx.Agency {
	case ledger.ProviderReaVaya:
		return reaVaya(ctx), nil
	case ledger.ProviderGautrain:
		return gautrain(), nil
	}
	return Quote{}, fmt.Errorf("%w: %s", ErrUnsupportedAgency, ctx.Agency)
}

// reaVaya: distance-based, base R10.00 plus R1.25 per km.
func reaVaya(ctx Context) Quote {
	const (
		baseCents  = 1000
		perKmCents = 125
	)

	distanceKm := haversineKm(ctx.StartLat, ctx.StartLng, ctx.EndLat, ctx.EndLng)
	amount := baseCents + int64(math.Round(distanceKm*perKmCents))

	return Quote{
		AmountCents: amount,
		Currency:    "ZAR",
		Breakdown: map[string]float64{
			"base":        10.00,
			"distance_km": math.Round(distanceKm*100) / 100,
			"per_km":      1.25,
		},
	}
}

// gautrain: flat fare until zone pricing lands.
func gautrain() Quote {
	return Quote{AmountCents: 4500, Currency: "ZAR"}
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
