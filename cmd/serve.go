package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hotelfood/configs"
	"hotelfood/middlewares"
	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/metrics"
	"hotelfood/routes"
	"hotelfood/ws"
)

var serveSeed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "load the default menu before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "changeme" {
		log.Warn("JWT_SECRET is the default value, set it before going live")
	}
	if err := configs.SeedStaff(db, cfg, log); err != nil {
		return fmt.Errorf("seed staff: %w", err)
	}
	if serveSeed {
		if err := configs.SeedMenu(db, false, log); err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}

	carts, closeCarts, err := openCartStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCarts()

	hub := ws.NewOrderHub(log)
	go hub.Run(ctx)

	limiter := middlewares.NewRateLimiter(cfg.LoginRatePerMin, cfg.LoginBurst, log)
	limiter.StartCleanup(ctx, 5*time.Minute)

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewRouter(routes.Deps{
		DB:      db,
		Config:  cfg,
		Carts:   carts,
		Hub:     hub,
		Metrics: metrics.New(),
		Limiter: limiter,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("🚀 server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openCartStore picks the cart backend from CART_BACKEND.
func openCartStore(ctx context.Context, cfg *configs.Config, log *logrus.Logger) (cartstore.Store, func(), error) {
	switch strings.ToLower(cfg.CartBackend) {
	case "", "memory":
		store := cartstore.NewMemoryStore(cfg.CartTTL)
		store.StartSweeper(ctx, time.Minute)
		log.Info("cart store: memory")
		return store, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("cart store: redis")
		return cartstore.NewRedisStore(client, cfg.CartTTL), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported CART_BACKEND %q", cfg.CartBackend)
	}
}
