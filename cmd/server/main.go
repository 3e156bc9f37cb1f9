package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"betpool/internal/api"
	"betpool/internal/auth"
	"betpool/internal/catalog"
	"betpool/internal/config"
	"betpool/internal/ledger"
	"betpool/internal/matches"
	"betpool/internal/middleware"
	"betpool/internal/remote"
	"betpool/internal/store"
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Stores
	users := store.NewGormUserStore(db)
	ticketLedger := store.NewGormTicketLedger(db)
	txLedger := store.NewGormTransactionLedger(db)
	matchCatalog := store.NewGormMatchCatalog(db)

	// Services
	tickets := ledger.NewTicketService(ticketLedger, nil)
	deposits := ledger.NewDepositService(txLedger, users, nil)

	// Match sources: the static source always exists, the generative one is
	// layered on top when configured.
	static, err := matches.NewStaticSourceFromFile(cfg.RoundFixture)
	if err != nil {
		logrus.Fatalf("failed to load round fixture: %v", err)
	}
	var roundSource matches.RoundSource = static
	var tipSource matches.TipSource = static
	if cfg.GenAIURL != "" {
		genai := matches.NewGenAISource(cfg.GenAIURL, cfg.GenAIKey, static)
		roundSource = genai
		tipSource = genai
	}

	// Remote credential fallback, only when configured
	var lookup api.UserLookup
	if cfg.RemoteURL != "" {
		lookup = remote.NewClient(cfg.RemoteURL, cfg.RemoteAPIKey)
	}

	// Storefront catalog
	plans := catalog.New(cfg.WhatsAppNumber)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.POST("/auth/register", api.RegisterHandler(users))
	r.POST("/auth/login", api.LoginHandler(users, lookup, cfg.JWTSecret))
	r.GET("/matches", api.GetMatchesHandler(matchCatalog, redisClient))
	r.GET("/plans", api.ListPlansHandler(plans))
	r.GET("/plans/:id/handoff", api.PlanHandoffHandler(plans))

	// Authenticated routes
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	authed.GET("/matches/tips", api.GetTipsHandler(matchCatalog, tipSource))
	authed.PUT("/matches", middleware.RequireAction(auth.ActionUpdateRound), api.UpdateMatchesHandler(matchCatalog, redisClient))
	authed.POST("/matches/generate", middleware.RequireAction(auth.ActionUpdateRound), api.GenerateRoundHandler(matchCatalog, roundSource, redisClient))

	authed.POST("/tickets", middleware.RequireAction(auth.ActionIssueTicket), api.IssueTicketHandler(tickets, matchCatalog, redisClient))
	authed.GET("/tickets", api.ListTicketsHandler(tickets, redisClient))
	authed.POST("/tickets/:id/pay", middleware.RequireAction(auth.ActionPayTicket), api.PayTicketHandler(tickets, redisClient))
	authed.DELETE("/tickets/:id", middleware.RequireAction(auth.ActionDeleteTicket), api.DeleteTicketHandler(tickets, redisClient))
	authed.GET("/market/lock", api.MarketStatusHandler(tickets))
	authed.PUT("/market/lock", middleware.RequireAction(auth.ActionToggleLock), api.MarketLockHandler(tickets))

	authed.POST("/deposits", middleware.RequireAction(auth.ActionRequestDeposit), api.RequestDepositHandler(deposits, users))
	authed.GET("/deposits", api.ListMyDepositsHandler(deposits))
	authed.GET("/deposits/pending", middleware.RequireAction(auth.ActionResolveDeposit), api.ListPendingDepositsHandler(deposits))
	authed.POST("/deposits/:id/approve", middleware.RequireAction(auth.ActionResolveDeposit), api.ApproveDepositHandler(deposits))
	authed.POST("/deposits/:id/reject", middleware.RequireAction(auth.ActionResolveDeposit), api.RejectDepositHandler(deposits))

	authed.GET("/accounting/weekly", api.WeeklyStatsHandler(ticketLedger))

	authed.GET("/users", middleware.RequireAction(auth.ActionListUsers), api.ListUsersHandler(users, redisClient))
	authed.POST("/users", middleware.RequireAction(auth.ActionCreateUser), api.CreateUserHandler(users, redisClient))
	authed.POST("/users/:username/balance", middleware.RequireAction(auth.ActionAdjustBalance), api.AdjustBalanceHandler(users, redisClient))
	authed.PUT("/users/:username/pix", middleware.RequireAction(auth.ActionUpdatePixKey), api.UpdatePixKeyHandler(users, redisClient))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
