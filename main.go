package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "ebuy/internal/biddingService"
	"ebuy/internal/config"
	"ebuy/internal/fixtures"
	"ebuy/internal/idempotency"
	"ebuy/internal/repository"
	"ebuy/internal/server"
	"ebuy/utils"

	"github.com/redis/go-redis/v9"
)

const seedBidders = 5

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Fatal("invalid log level", map[string]any{"level": cfg.LogLevel, "error": err.Error()})
	}

	repos, closeRepos := openRepositories(cfg)
	defer closeRepos()

	var opts []bidding.Option
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			utils.Fatal("failed to connect redis", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
		}
		utils.Info("connected to redis", map[string]any{"addr": cfg.RedisAddr})
		opts = append(opts, bidding.WithIdempotencyStore(idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL)))
	} else {
		opts = append(opts, bidding.WithIdempotencyStore(idempotency.NewMemoryStore(cfg.IdempotencyTTL)))
	}

	if err := prepopulate(ctx, repos, cfg.SeedAuctions); err != nil {
		utils.Fatal("failed to seed data", map[string]any{"error": err.Error()})
	}

	biddingSvc := bidding.NewBiddingService(repos.Auctions, repos.Users, repos.Products, opts...)

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.SetupRouter(biddingSvc),
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": cfg.Addr()})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		utils.Error("HTTP server shutdown failed", map[string]any{"error": err.Error()})
	}
	utils.Info("HTTP server stopped", nil)

	if rdb != nil {
		rdb.Close()
	}
}

// openRepositories returns BoltDB repositories when DB_PATH is set and
// in-memory ones otherwise
func openRepositories(cfg config.Config) (*repository.Repositories, func()) {
	if cfg.DBPath == "" {
		utils.Info("using in-memory storage", nil)
		return repository.NewMemoryRepositories(), func() {}
	}

	db, err := repository.OpenBolt(cfg.DBPath)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"path": cfg.DBPath, "error": err.Error()})
	}
	repos, err := repository.NewBoltRepositories(db)
	if err != nil {
		db.Close()
		utils.Fatal("failed to prepare database", map[string]any{"path": cfg.DBPath, "error": err.Error()})
	}
	utils.Info("using bolt storage", map[string]any{"path": cfg.DBPath})

	return repos, func() {
		if err := db.Close(); err != nil {
			utils.Error("failed to close database", map[string]any{"error": err.Error()})
		}
	}
}

// prepopulate adds sample auctions and bidders to an empty store
func prepopulate(ctx context.Context, repos *repository.Repositories, n int) error {
	if n == 0 {
		return nil
	}
	existing, err := repos.Auctions.All(ctx, 0, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		utils.Info("store already populated, skipping seed", nil)
		return nil
	}

	seq := fixtures.NewSequence()
	auctions, err := fixtures.Seed(ctx, repos, seq, fixtures.AuctionGenerator{}, n)
	if err != nil {
		return err
	}
	bidders, err := fixtures.SeedUsers(ctx, repos, seq, seedBidders)
	if err != nil {
		return err
	}

	for _, a := range auctions {
		utils.Info("seeded auction", map[string]any{"auction_key": a.Key, "title": a.Title, "ends": a.EndTime})
	}
	for _, u := range bidders {
		utils.Info("seeded bidder", map[string]any{"user_id": u.UserID, "display_name": u.DisplayName})
	}
	return nil
}
