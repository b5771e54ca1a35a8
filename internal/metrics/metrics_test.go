package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/wallet", "200", 0.05)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/wallet", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/wallet/topup", "200", 0.1)
	RecordHTTPRequest("POST", "/wallet/topup", "200", 0.2)
	RecordHTTPRequest("POST", "/wallet/topup", "400", 0.05)

	okCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/topup", "200"))
	badCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/topup", "400"))

	assert.Equal(t, float64(2), okCount)
	assert.Equal(t, float64(1), badCount)
}

func TestRecordTrip(t *testing.T) {
	TripsTotal.Reset()

	RecordTrip("Gautrain", "completed")
	RecordTrip("Gautrain", "payment_unavailable")
	RecordTrip("Rea Vaya", "completed")

	completed := testutil.ToFloat64(TripsTotal.WithLabelValues("Gautrain", "completed"))
	failed := testutil.ToFloat64(TripsTotal.WithLabelValues("Gautrain", "payment_unavailable"))

	assert.Equal(t, float64(1), completed)
	assert.Equal(t, float64(1), failed)
}

func TestRecordPoints(t *testing.T) {
	PointsAwardedTotal.Reset()

	RecordPoints("topup", 12)
	RecordPoints("topup", 3)
	RecordPoints("trip", 18)

	topup := testutil.ToFloat64(PointsAwardedTotal.WithLabelValues("topup"))
	trip := testutil.ToFloat64(PointsAwardedTotal.WithLabelValues("trip"))

	assert.Equal(t, float64(15), topup)
	assert.Equal(t, float64(18), trip)
}

func TestRecordPointsIgnoresNonPositive(t *testing.T) {
	PointsAwardedTotal.Reset()

	RecordPoints("redeem", -500)
	RecordPoints("redeem", 0)

	count := testutil.ToFloat64(PointsAwardedTotal.WithLabelValues("redeem"))
	assert.Equal(t, float64(0), count)
}

func TestRecordTicketSale(t *testing.T) {
	TicketsSoldTotal.Reset()

	RecordTicketSale("single", "App")
	RecordTicketSale("single", "Counter")
	RecordTicketSale("monthly", "App")

	appSingles := testutil.ToFloat64(TicketsSoldTotal.WithLabelValues("single", "App"))
	counterSingles := testutil.ToFloat64(TicketsSoldTotal.WithLabelValues("single", "Counter"))

	assert.Equal(t, float64(1), appSingles)
	assert.Equal(t, float64(1), counterSingles)
}

func TestRecordAdvisoryRequest(t *testing.T) {
	AdvisoryRequestsTotal.Reset()

	RecordAdvisoryRequest("plan_trip", "success")
	RecordAdvisoryRequest("plan_trip", "fallback")

	success := testutil.ToFloat64(AdvisoryRequestsTotal.WithLabelValues("plan_trip", "success"))
	fallback := testutil.ToFloat64(AdvisoryRequestsTotal.WithLabelValues("plan_trip", "fallback"))

	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), fallback)
}
