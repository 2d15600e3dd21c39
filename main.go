package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/juju/clock"

	"sjsage522/dealcollector/config"
	"sjsage522/dealcollector/helpers"
	"sjsage522/dealcollector/internal"
	"sjsage522/dealcollector/internal/crawler"
	"sjsage522/dealcollector/logger"
	crawlerrors "sjsage522/dealcollector/pkg/errors"
	"sjsage522/dealcollector/services/cache"
	"sjsage522/dealcollector/services/metrics"
	"sjsage522/dealcollector/services/publisher"
	"sjsage522/dealcollector/services/sink"
	"sjsage522/dealcollector/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	logger.WithRunID(uuid.NewString())
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.WithError(crawlerrors.NewConfiguration("invalid configuration", err)).Fatal().Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("output", cfg.OutputPath).
		Int("cap", cfg.CollectionCap).
		Msg("Starting collection")

	// Cancel the run on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	start := time.Now()
	err := run(ctx, cfg)
	stop()

	log.Info().Dur("elapsed", time.Since(start)).Msg("Total elapsed time")
	if err != nil {
		log.Fatal().
			Err(err).
			Str("error_type", string(crawlerrors.TypeOf(err))).
			Msg("Collection failed")
	}
}

// run performs one collection and writes the output file
func run(ctx context.Context, cfg *config.Config) error {
	keywords, err := config.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return crawlerrors.NewConfiguration("load keywords", err)
	}

	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	deps := internal.Dependencies{
		Cache:   services.Cache,
		Metrics: metrics.NewRegistry(),
	}
	if services.Publisher != nil {
		deps.Publisher = services.Publisher
	}

	collector := crawler.NewCollector(
		cfg,
		crawler.NewPpomCatalog(cfg),
		helpers.NewHTTPFetcher(cfg.RequestTimeout),
		crawler.NewClassifier(keywords, cfg.HotPriceThreshold),
		helpers.NewPacer(clock.WallClock, cfg.FetchDelayMin, cfg.FetchDelayMax),
		deps,
	)

	w := worker.NewWorker(collector, sink.NewCSVSink(cfg.OutputPath), deps, cfg.MetricsTextfile)
	return w.Run(ctx)
}

// Services holds the optional backing services
type Services struct {
	Cache     cache.CacheService
	Publisher *publisher.RedisPublisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices connects the optional services. An unreachable service
// is disabled for this run rather than failing it.
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr, "dealcollector:")
		if err := mc.Ping(); err != nil {
			logger.ForCache().Warn().Err(err).Str("addr", cfg.MemcacheAddr).Msg("Memcache unavailable, variant cooldown disabled")
		} else {
			services.Cache = mc
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
	}

	if cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisPublisher.Ping(pingCtx); err != nil {
			logger.ForPublisher().Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, publishing disabled")
			redisPublisher.Close()
		} else {
			services.Publisher = redisPublisher
			logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
				cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
		}
	}

	return services
}
