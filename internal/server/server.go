package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shoxx1211/Mzansipass/internal/advisory"
	"github.com/Shoxx1211/Mzansipass/internal/config"
	"github.com/Shoxx1211/Mzansipass/internal/ledger"
	"github.com/Shoxx1211/Mzansipass/internal/loyalty"
	"github.com/Shoxx1211/Mzansipass/internal/ticket"
	"github.com/Shoxx1211/Mzansipass/internal/transit"
	"github.com/Shoxx1211/Mzansipass/internal/trip"
	"github.com/Shoxx1211/Mzansipass/internal/user"
	"github.com/Shoxx1211/Mzansipass/internal/wallet"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(store *ledger.Store, cfg *config.Config, advisorySvc advisory.Service, watcher *advisory.Watcher, notifier loyalty.Notifier) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userHandler := user.NewHandler(store)
	walletHandler := wallet.NewHandler(store)
	tripHandler := trip.NewHandler(store, watcher)
	ticketHandler := ticket.NewHandler(store)
	loyaltyHandler := loyalty.NewHandler(store, notifier)
	transitHandler := transit.NewHandler(store, advisorySvc)

	router.POST("/users", userHandler.CreateUser)
	router.GET("/me", userHandler.GetMe)
	router.POST("/me/pin", userHandler.SetPin)
	router.POST("/me/pin/verify", userHandler.VerifyPin)

	w := router.Group("/wallet")
	{
		w.GET("", walletHandler.GetWallet)
		w.POST("/topup", walletHandler.TopUp)
		w.GET("/transactions", walletHandler.ListTransactions)
		w.GET("/cards", walletHandler.ListCards)
		w.POST("/cards", walletHandler.LinkCard)
		w.DELETE("/cards/:cardID", walletHandler.UnlinkCard)
		w.PUT("/card/theme", walletHandler.UpdateTheme)
		w.PUT("/card/holder", walletHandler.UpdateHolderName)
	}

	trips := router.Group("/trips")
	{
		trips.GET("", tripHandler.ListTrips)
		trips.POST("/start", tripHandler.StartTrip)
		trips.POST("/:tripID/end", tripHandler.EndTrip)
		trips.GET("/:tripID/advisory", tripHandler.GetAdvisory)
	}
	router.GET("/fares/quote", tripHandler.QuoteFare)

	tickets := router.Group("/tickets")
	{
		tickets.GET("", ticketHandler.ListTickets)
		tickets.POST("", ticketHandler.Purchase)
	}

	l := router.Group("/loyalty")
	{
		l.GET("", loyaltyHandler.GetSummary)
		l.GET("/challenges", loyaltyHandler.ListChallenges)
		l.GET("/rewards", loyaltyHandler.ListRewards)
		l.POST("/rewards/:rewardID/redeem", loyaltyHandler.RedeemReward)
		l.POST("/notify-contact", loyaltyHandler.NotifyContact)
	}

	tr := router.Group("/transit")
	{
		tr.GET("/alerts", transitHandler.ListAlerts)
		tr.POST("/alerts/report", transitHandler.ReportAlert)
		tr.POST("/plan", transitHandler.PlanTrip)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
