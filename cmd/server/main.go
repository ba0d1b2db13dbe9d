package main

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fleetchat/internal/analytics"
	"fleetchat/internal/chat"
	"fleetchat/internal/config"
	"fleetchat/internal/database"
	"fleetchat/internal/entitlement"
	"fleetchat/internal/handlers"
	"fleetchat/internal/llm"
	"fleetchat/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := database.NewRepository(db, cfg.DailyQuota)

	sessionStore, err := storage.NewLocalStore(cfg.SessionDir)
	if err != nil {
		logger.Fatal("failed to initialize session store", zap.Error(err))
	}

	aggregator := analytics.NewAggregator(repo)
	completer := llm.NewClient(cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	entitlements := entitlement.NewStoreService(repo)

	chats := chat.NewManager(chat.Deps{
		Builder:      aggregator,
		Completer:    completer,
		Store:        sessionStore,
		Entitlements: entitlements,
		Logger:       logger,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		HistoryLimit: cfg.HistoryLimit,
	})

	h, err := handlers.New(repo, aggregator, chats, logger)
	if err != nil {
		logger.Fatal("failed to initialize handlers", zap.Error(err))
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// API - Chat
	r.Post("/api/chat/send", h.SendMessage)
	r.Get("/api/chat", h.GetChat)
	r.Delete("/api/chat", h.ClearChat)

	// API - Dashboard
	r.Get("/api/dashboard/context", h.DashboardContext)

	// API - Users
	r.Get("/api/users", h.ListUsers)
	r.Post("/api/users", h.CreateUser)
	r.Post("/api/users/select", h.SelectUser)

	// API - Vehicles & records
	r.Get("/api/vehicles", h.ListVehicles)
	r.Post("/api/vehicles", h.CreateVehicle)
	r.Post("/api/records", h.CreateRecord)
	r.Get("/api/records/recent", h.RecentRecords)

	logger.Info("server starting", zap.String("addr", "http://localhost:"+cfg.ServerPort))
	for _, ip := range lanIPs() {
		logger.Info("LAN access", zap.String("addr", "http://"+ip+":"+cfg.ServerPort))
	}
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func lanIPs() []string {
	var ips []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return ips
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			ip = ip.To4()
			if ip == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips
}
