package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kotovdv/tweetwatch/internal/config"
	"github.com/kotovdv/tweetwatch/internal/metrics"
	"github.com/kotovdv/tweetwatch/internal/search"
	"github.com/kotovdv/tweetwatch/internal/search/mock"
	"github.com/kotovdv/tweetwatch/internal/search/twitter"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	queries := os.Args[1:]
	if len(queries) == 0 {
		logger.Error("no queries given", zap.String("usage", "tweetwatch <query> [query...]"))
		os.Exit(1)
	}

	m := metrics.New()
	go func() {
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
		if err := http.ListenAndServe(cfg.Metrics.Addr, metrics.Handler()); err != nil {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	client, err := buildClient(cfg, logger, m)
	if err != nil {
		logger.Error("failed to build client", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("client initialized", zap.String("mode", cfg.ClientMode))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Pacing and concurrency live here, at the caller boundary. The client
	// itself performs exactly one request per Fetch with no retry.
	perMinute := cfg.RateLimit.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)

	enc := json.NewEncoder(os.Stdout)
	var encMu sync.Mutex

	workers := cfg.Search.Workers
	if workers <= 0 {
		workers = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, query := range queries {
		query := query
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}

			raw, err := client.Fetch(ctx, query, cfg.Search.Limit)
			if err != nil {
				logger.Warn("query skipped", zap.String("query", query), zap.Error(err))
				return nil
			}

			posts := client.Normalize(raw)
			logger.Info("query done", zap.String("query", query), zap.Int("posts", len(posts)))

			encMu.Lock()
			defer encMu.Unlock()
			for _, p := range posts {
				if err := enc.Encode(p); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("run complete", zap.Int("queries", len(queries)))
}

func buildClient(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (search.Client, error) {
	if cfg.ClientMode == "mock" {
		return mock.New(), nil
	}
	return twitter.New(twitter.Config{
		BearerToken: cfg.Twitter.BearerToken,
		BaseURL:     cfg.Twitter.BaseURL,
		Timeout:     cfg.Twitter.Timeout,
	}, logger, m)
}
