package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/clock"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/config"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/db"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/desk"
	internalhttp "github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/http"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/jobs"
	"github.com/Blenderman2003/CITA450-Innvoice-Capstone/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis ping failed: %v", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}()
	}

	formatter, err := clock.NewFormatter(cfg.DisplayTimeZone)
	if err != nil {
		log.Fatalf("display timezone invalid: %v", err)
	}

	deskSvc := desk.NewService(store, formatter)
	server := internalhttp.NewServer(cfg, store, deskSvc, redisClient)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	jobs.StartRoomReconcileJob(ctx, cfg, store)

	go func() {
		log.Printf("frontdesk http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
