package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoxx1211/Mzansipass/internal/ledger"
)

func TestCalculateReaVayaZeroDistance(t *testing.T) {
	quote, err := Calculate(Context{
		Agency:   ledger.ProviderReaVaya,
		StartLat: -26.2041, StartLng: 28.0473,
		EndLat: -26.2041, EndLng: 28.0473,
	})
	require.NoError(t, err)

	// base fare only
	assert.Equal(t, int64(1000), quote.AmountCents)
	assert.Equal(t, "ZAR", quote.Currency)
	assert.Equal(t, float64(0), quote.Breakdown["distance_km"])
}

func TestCalculateReaVayaDistanceBased(t *testing.T) {
	// Johannesburg CBD to Sandton, roughly 13 km
	quote, err := Calculate(Context{
		Agency:   ledger.ProviderReaVaya,
		StartLat: -26.2041, StartLng: 28.0473,
		EndLat: -26.1076, EndLng: 28.0567,
	})
	require.NoError(t, err)

	assert.Greater(t, quote.AmountCents, int64(1000))
	assert.InDelta(t, 10.8, quote.Breakdown["distance_km"], 1.0)
	// base + distance * per_km, within a cent of the breakdown
	expected := int64(1000) + int64(quote.Breakdown["distance_km"]*125)
	assert.InDelta(t, float64(expected), float64(quote.AmountCents), 2)
}

func TestCalculateDeterministic(t *testing.T) {
	ctx := Context{
		Agency:   ledger.ProviderReaVaya,
		StartLat: -26.2041, StartLng: 28.0473,
		EndLat: -25.7479, EndLng: 28.2293,
	}

	first, err := Calculate(ctx)
	require.NoError(t, err)
	second, err := Calculate(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateGautrainFlat(t *testing.T) {
	quote, err := Calculate(Context{Agency: ledger.ProviderGautrain})
	require.NoError(t, err)
	assert.Equal(t, int64(4500), quote.AmountCents)
}

func TestCalculateUnsupportedAgency(t *testing.T) {
	_, err := Calculate(Context{Agency: ledger.ProviderMetrobus})
	assert.ErrorIs(t, err, ErrUnsupportedAgency)
}
