package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mzansipass_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mzansipass_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	TripsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_trips_total",
			Help: "Total number of tap-out attempts",
		},
		[]string{"provider", "outcome"},
	)

	TicketsSoldTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_prasa_tickets_sold_total",
			Help: "Total number of PRASA tickets sold",
		},
		[]string{"type", "source"},
	)

	PointsAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_loyalty_points_awarded_total",
			Help: "Total Bonsella points awarded",
		},
		[]string{"reason"},
	)

	ChallengesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mzansipass_challenges_completed_total",
			Help: "Total number of challenges completed",
		},
	)

	RewardsRedeemedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_rewards_redeemed_total",
			Help: "Total number of reward redemptions",
		},
		[]string{"reward"},
	)

	AdvisoryRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_advisory_requests_total",
			Help: "Total number of advisory service calls",
		},
		[]string{"operation", "outcome"},
	)

	NotificationsQueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mzansipass_notifications_queued_total",
			Help: "Total number of contact notifications queued",
		},
	)

	AlertsReportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mzansipass_transit_alerts_total",
			Help: "Total number of transit alerts added to the feed",
		},
		[]string{"type", "category"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTopUp() {
	TopUpsTotal.Inc()
}

func RecordTrip(provider, outcome string) {
	TripsTotal.WithLabelValues(provider, outcome).Inc()
}

func RecordTicketSale(ticketType, source string) {
	TicketsSoldTotal.WithLabelValues(ticketType, source).Inc()
}

func RecordPoints(reason string, points int) {
	if points <= 0 {
		return
	}
	PointsAwardedTotal.WithLabelValues(reason).Add(float64(points))
}

func RecordChallengeCompleted() {
	ChallengesCompletedTotal.Inc()
}

func RecordRedemption(reward string) {
	RewardsRedeemedTotal.WithLabelValues(reward).Inc()
}

func RecordAdvisoryRequest(operation, outcome string) {
	AdvisoryRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordNotificationQueued() {
	NotificationsQueuedTotal.Inc()
}

func RecordAlert(alertType, category string) {
	AlertsReportedTotal.WithLabelValues(alertType, category).Inc()
}
