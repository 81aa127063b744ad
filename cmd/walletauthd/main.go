package main

import (
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/ByteAtATime/firebase-auth-extension/adapters/authority"
	"github.com/ByteAtATime/firebase-auth-extension/adapters/events"
	"github.com/ByteAtATime/firebase-auth-extension/adapters/store"
	"github.com/ByteAtATime/firebase-auth-extension/internal/config"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
	"github.com/ByteAtATime/firebase-auth-extension/service"
	transporthttp "github.com/ByteAtATime/firebase-auth-extension/transport/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// The authority is built exactly once and injected everywhere; no
	// lazy first-call-wins initialization
	signKey, err := authority.LoadSigningKey(cfg)
	if err != nil {
		logger.Error("failed to load signing key", "mode", cfg.KeyMode().String(), "error", err)
		os.Exit(1)
	}
	if cfg.KeyMode() == config.KeyModeEmulator {
		logger.Warn("using ephemeral signing key; credentials will not survive a restart",
			"emulator_host", cfg.EmulatorHost)
	}
	issuingAuthority := authority.NewJWTAuthority(cfg.ProjectID, signKey)

	var revocations ports.Store
	var eventPub ports.EventPublisher
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Error("failed to create Redis publisher", "error", err)
			os.Exit(1)
		}

		revocations = store.NewRedisStore(redisClient)
		eventPub = events.NewWatermillPublisher(publisher)
	} else {
		logger.Warn("REDIS_URL not set; revocations are per-instance and in-memory")
		revocations = store.NewMemoryStore()
	}

	var credTransport ports.CredentialTransport
	switch cfg.Transport {
	case config.TransportCookie:
		credTransport = transporthttp.NewCookieTransport(cfg.CookieSecure)
	default:
		credTransport = transporthttp.NewBearerTransport()
	}

	authService := service.NewAuthService(issuingAuthority, revocations, eventPub, credTransport.TTL(), logger)

	router := transporthttp.SetupRouter(authService, credTransport, logger)

	logger.Info("starting server",
		"addr", cfg.ListenAddr,
		"transport", cfg.Transport,
		"key_mode", cfg.KeyMode().String())
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
