package main

import (
	"net/http"

	"bambora-bridge/internal/checkout"
	"bambora-bridge/internal/config"
	"bambora-bridge/internal/db"
	"bambora-bridge/internal/gateway"
	"bambora-bridge/internal/logger"
	"bambora-bridge/internal/payment"
	"bambora-bridge/internal/payment/webhook"
	"bambora-bridge/internal/transport"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, "bambora-bridge")
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	repo := payment.NewRepository(database)

	client := gateway.NewClient(gateway.APIKey(cfg.AccessToken, cfg.MerchantNumber, cfg.SecretToken))

	builder := &checkout.Builder{
		PaymentWindowID:   cfg.PaymentWindowID,
		InstantCapture:    cfg.InstantCapture,
		ImmediateRedirect: cfg.ImmediateRedirect,
		Language:          cfg.Language,
		URLs: checkout.StaticURLs{
			Accept:   cfg.AcceptURL,
			Decline:  cfg.DeclineURL,
			Callback: cfg.CallbackURL,
		},
	}

	svc := payment.NewService(client, repo, builder, cfg.CanVoid)

	callbackHandler := webhook.NewHandler(repo, cfg.MD5Key)

	mux := http.NewServeMux()
	transport.NewHandler(svc, repo).Register(mux)
	mux.HandleFunc("/bambora/callback", callbackHandler.Callback)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
