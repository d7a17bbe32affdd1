package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"docmarket/internal/client"
	"docmarket/internal/config"
	"docmarket/internal/repository"
	"docmarket/internal/server"
	"docmarket/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := buildLogger(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	commissionRate, err := decimal.NewFromString(cfg.Commerce.CommissionRate)
	if err != nil {
		log.Fatal("invalid commission rate", zap.String("rate", cfg.Commerce.CommissionRate), zap.Error(err))
	}

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("init database", zap.Error(err))
	}
	gatewayClient := client.NewGatewayClient(&cfg.Gateway)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	earningsRepo := repository.NewEarningsRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	userService := service.NewUserService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	productService := service.NewProductService(productRepo)
	earningsService := service.NewEarningsService(earningsRepo)
	purchaseService := service.NewPurchaseService(
		db, gatewayClient, cfg.Commerce.Currency, log,
		productRepo, purchaseRepo, earningsRepo,
	)
	settlementService := service.NewSettlementService(
		db, gatewayClient, commissionRate, log,
		productRepo, purchaseRepo, earningsRepo, webhookEventRepo,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(log, cfg.Auth.JWTSecret, userService, productService, purchaseService, earningsService, settlementService)

	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func buildLogger(cfg *config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
