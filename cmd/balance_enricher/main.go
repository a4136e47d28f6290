package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/app/service"
	"balance_enricher/internal/infrastructure/configloader"
	"balance_enricher/internal/infrastructure/httpclient"
	"balance_enricher/internal/infrastructure/network/client"
	networkdefinition "balance_enricher/internal/infrastructure/network/definition"
	"balance_enricher/internal/infrastructure/restapi"
	"balance_enricher/internal/infrastructure/seedloader"
	"balance_enricher/internal/pkg/logger"
	"balance_enricher/internal/pkg/metrics"
	"balance_enricher/internal/pkg/utils"
	"balance_enricher/internal/storage"
	"balance_enricher/internal/storage/memory"
	"balance_enricher/internal/storage/postgres"
)

func main() {
	// logrus covers the bootstrap phase until the config is loaded.
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	stdLogger := slog.New(slogHandler)
	slog.SetDefault(stdLogger)
	logger.SetLogger(stdLogger)
	appLogger := logger.NewSlogAdapter()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		addressStore storage.AddressStore
		tokenStore   storage.TokenStore
		holdingStore storage.HoldingStore
		priceStore   storage.PriceStore
	)
	if cfg.Database.UseMemory || cfg.Database.DSN == "" {
		zapLogger.Info("Using in-memory stores")
		memAddresses := memory.NewAddressStore()
		memTokens := memory.NewTokenStore()

		seeds := seedloader.NewSeedLoader(appLogger)
		addresses, err := seeds.LoadAddresses()
		if err != nil {
			zapLogger.Fatal("Failed to load tracked addresses", zap.Error(err))
		}
		for _, a := range addresses {
			memAddresses.Put(a)
		}
		tokensByChain, err := seeds.LoadTokens()
		if err != nil {
			zapLogger.Fatal("Failed to load token catalog", zap.Error(err))
		}
		for _, tokens := range tokensByChain {
			for _, t := range tokens {
				memTokens.Put(t)
			}
		}

		addressStore = memAddresses
		tokenStore = memTokens
		holdingStore = memory.NewHoldingStore()
		priceStore = memory.NewPriceStore()
	} else {
		zapLogger.Info("Using postgres stores")
		pool, err := postgres.NewPool(ctx, cfg.Database.DSN)
		if err != nil {
			zapLogger.Fatal("Failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		addressStore = postgres.NewAddressStore(pool)
		tokenStore = postgres.NewTokenStore(pool)
		holdingStore = postgres.NewHoldingStore(pool)
		priceStore = postgres.NewPriceStore(pool)
	}

	oracle := httpclient.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		time.Duration(cfg.CoinGecko.RequestTimeoutMillis)*time.Millisecond,
		cfg.CoinGecko.RequestsPerMinute,
		zapLogger,
	)
	priceService := service.NewPriceService(
		priceStore,
		oracle,
		appLogger,
		time.Duration(cfg.CoinGecko.PriceTTLSeconds)*time.Second,
	)

	var classifier port.SpamClassifier
	if cfg.Blockaid.APIKey != "" {
		scanner := httpclient.NewBlockaidClient(
			cfg.Blockaid.BaseURL,
			cfg.Blockaid.APIKey,
			time.Duration(cfg.Blockaid.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
		)
		classifier = service.NewSpamService(
			scanner,
			appLogger,
			time.Duration(cfg.Blockaid.CacheTTLMinutes)*time.Minute,
			cfg.Performance.MaxConcurrentRoutines,
		)
	} else {
		zapLogger.Info("Blockaid API key not set, running without spam classification")
	}

	connectTimeout := time.Duration(cfg.Performance.RPCConnectTimeoutSeconds) * time.Second
	callTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
	registry := client.NewFetcherRegistry()
	for _, def := range networkdefinition.All() {
		tokens, err := tokenStore.GetVerifiedByChain(ctx, def.ChainAlias)
		if err != nil {
			zapLogger.Warn("Failed to load token catalog for chain", zap.String("chain", def.ChainAlias), zap.Error(err))
		}
		fetcher, err := client.NewEVMFetcher(def, tokens, connectTimeout, callTimeout)
		if err != nil {
			zapLogger.Warn("Failed to initialize fetcher for chain, skipping",
				zap.String("chain", def.ChainAlias), zap.Error(err))
			continue
		}
		registry.Register(def.ChainAlias, def.Network, fetcher)
		zapLogger.Info("Registered balance fetcher", zap.String("chain", def.ChainAlias), zap.String("network", def.Network))
	}

	balanceService := service.NewBalanceService(
		addressStore,
		tokenStore,
		holdingStore,
		priceService,
		classifier,
		registry,
		appLogger,
		cfg.CoinGecko.VsCurrency,
		"mainnet",
	)

	router := restapi.SetupRouter(restapi.NewBalanceHandler(balanceService, appLogger))

	addr := cfg.Server.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting")
}
