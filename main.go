// careerpilot - multi-agent LinkedIn career assistant server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/careerpilot/careerpilot/internal/api"
	"github.com/careerpilot/careerpilot/internal/assistant"
	"github.com/careerpilot/careerpilot/internal/config"
	"github.com/careerpilot/careerpilot/internal/domain"
	"github.com/careerpilot/careerpilot/internal/ingest"
	"github.com/careerpilot/careerpilot/internal/llm"
	"github.com/careerpilot/careerpilot/internal/profile"
	"github.com/careerpilot/careerpilot/internal/store"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("failed to close store", "error", closeErr)
		}
	}()
	slog.Info("checkpoint store ready", "backend", cfg.StoreBackend)

	routerBackend, roles, summarizer, err := buildGeneration(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize generation backends", "error", err)
		os.Exit(1)
	}
	slog.Info("generation backends ready", "provider", cfg.Provider)

	var queue assistant.IngestQueue
	var publisher *ingest.Publisher
	if cfg.IngestEnabled() {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			slog.Error("error connecting to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		publisher = ingest.NewPublisher(conn)
		queue = publisher
	}

	svc := assistant.NewService(st, assistant.NewRouter(routerBackend), roles, summarizer, queue, logger)

	if publisher != nil {
		pool := &ingest.WorkerPool{
			URL:        cfg.RabbitMQURL,
			Store:      st,
			Summarizer: summarizer,
			Publisher:  publisher,
			Locks:      svc.Locks(),
			Log:        logger,
		}
		if cfg.ApifyToken != "" {
			pool.Scraper = profile.NewScraper(cfg.ApifyToken)
		}
		if cfg.R2Enabled() {
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
				awsconfig.WithCredentialsProvider(
					credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
				awsconfig.WithRegion("auto"),
			)
			if err != nil {
				slog.Error("error creating aws config", "error", err)
				os.Exit(1)
			}
			pool.R2 = profile.NewR2Client(awsCfg, cfg.R2.AccountID, cfg.R2.Bucket)
		}

		go pool.Start(cfg.IngestWorkers)
		slog.Info("ingest worker pool started", "workers", cfg.IngestWorkers)
	}

	handler := api.NewHandler(svc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		return store.NewPostgres(cfg.DBURL)
	case config.StoreMemory:
		return store.NewMemory(), nil
	default:
		return store.NewSQLite(cfg.SQLitePath)
	}
}

// buildGeneration wires the supervisor backend, the four role
// builders, and the profile summarizer for the configured provider.
func buildGeneration(ctx context.Context, cfg *config.Config) (domain.RouterBackend, map[domain.RoutingDecision]assistant.RoleAgent, *profile.Summarizer, error) {
	roles := make(map[domain.RoutingDecision]assistant.RoleAgent)

	switch cfg.Provider {
	case config.ProviderAnthropic:
		backend := llm.NewAnthropic(cfg.AnthropicModel)
		for _, spec := range assistant.RoleSpecs() {
			roles[spec.Decision] = assistant.NewRole(spec, backend.Generator(spec.Instruction))
		}
		summarizer := profile.NewSummarizer(backend.Generator(profile.SummaryInstruction))
		return backend.RouterBackend(assistant.RouterInstruction), roles, summarizer, nil

	default:
		gemini, err := llm.NewGemini(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, nil, err
		}
		// Role builders run as ADK agents with their instruction baked
		// in; the supervisor and summarizer talk to Gemini directly.
		for _, spec := range assistant.RoleSpecs() {
			runner, err := llm.NewAgentRunner(ctx, cfg.GoogleAPIKey, cfg.GeminiModel,
				spec.Slug, spec.Description, spec.Instruction)
			if err != nil {
				return nil, nil, nil, err
			}
			roles[spec.Decision] = assistant.NewRole(spec, runner)
		}
		summarizer := profile.NewSummarizer(gemini.Generator(profile.SummaryInstruction))
		return gemini.RouterBackend(assistant.RouterInstruction), roles, summarizer, nil
	}
}
