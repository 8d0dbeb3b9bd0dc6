package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vaultkeep/internal/api"
	"vaultkeep/internal/audit"
	"vaultkeep/internal/auth"
	"vaultkeep/internal/config"
	"vaultkeep/internal/core"
	"vaultkeep/internal/ratelimit"
	"vaultkeep/internal/service"
	"vaultkeep/internal/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the vaultkeep server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		codec, err := auth.NewCodec(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTL)
		if err != nil {
			return fmt.Errorf("building token codec: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout)
		defer cancel()

		users, creds, cleanupMongo, err := buildStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanupMongo()

		counter, cleanupRedis, err := buildCounter(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanupRedis()

		auditor, err := audit.New(cfg.Audit.Enabled, cfg.Audit.Type, cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("building auditor: %w", err)
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Error().Err(err).Msg("closing auditor")
			}
		}()

		limiter := ratelimit.New(ratelimit.Options{
			Store:        counter,
			Verifier:     codec,
			WriteLimit:   cfg.RateLimitWrite,
			ReadLimit:    cfg.RateLimitRead,
			Window:       cfg.RateLimitWindow,
			StoreTimeout: cfg.StoreTimeout,
		})

		srv := api.NewServer(
			service.NewUserService(users, codec, auditor, cfg.StoreTimeout),
			service.NewCredentialService(creds, users, cfg.StoreTimeout),
			codec,
			limiter,
			auditor,
		)

		server := &http.Server{
			Addr:    cfg.Addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

// buildStores connects the document stores. Without a Mongo URI the server
// runs on in-memory stores, which only makes sense for local development.
func buildStores(ctx context.Context, cfg *config.Config) (core.UserStore, core.CredentialStore, func(), error) {
	if cfg.MongoURI == "" {
		log.Warn().Msg("no mongo_uri configured, using in-memory stores (data is lost on restart)")
		return store.NewInMemoryUserStore(), store.NewInMemoryCredentialStore(), func() {}, nil
	}

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting document store: %w", err)
	}
	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnecting document store")
		}
	}

	db := client.Database(cfg.MongoDatabase)
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to document store")
	return store.NewMongoUserStore(db), store.NewMongoCredentialStore(db), cleanup, nil
}

// buildCounter connects the shared rate-limit counter. Without a Redis
// address the limiter falls back to a process-local counter.
func buildCounter(ctx context.Context, cfg *config.Config) (core.CounterStore, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("no redis_addr configured, rate limits are per-process only")
		return ratelimit.NewMemoryCounter(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("pinging redis: %w", err)
	}
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis client")
		}
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to counter store")
	return ratelimit.NewRedisCounter(rdb), cleanup, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides VAULTKEEP_ADDR)")
}
