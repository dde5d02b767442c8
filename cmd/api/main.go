package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tacitus-api/internal/config"
	"tacitus-api/internal/geocoder"
	"tacitus-api/internal/graceful"
	"tacitus-api/internal/handler"
	"tacitus-api/internal/llm"
	"tacitus-api/internal/repository"
	"tacitus-api/internal/service"
	"tacitus-api/internal/wikipedia"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

const shutdownTimeout = 10 * time.Second

//	@title			Tacitus API
//	@version		1.0
//	@description	Location-aware question answering backed by Wikipedia and a language model.
//	@BasePath		/api

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						x-api-key

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger := config.SetupLogger(cfg, nil)

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	// Database connection
	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("cannot open location store")
	}
	defer store.Close()

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create language model backend")
	}

	// Initialize layers
	geo := geocoder.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent,
		geocoder.WithMinInterval(cfg.GeocoderMinInterval),
		geocoder.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
	)
	wiki := wikipedia.NewClient(cfg.WikipediaURL, cfg.WikipediaUserAgent, cfg.UpstreamTimeout)

	resolver := service.NewContextResolver(store, geo, wiki, cfg.MatchTolerance)
	answers := service.NewAnswerService(backend, cfg.LLMTimeout)
	queryService := service.NewQueryService(resolver, answers)
	locationService := service.NewLocationService(store)

	queryHandler := handler.NewQueryHandler(queryService)
	locationHandler := handler.NewLocationHandler(resolver, locationService)

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(logger, cfg.APIKey, queryHandler, locationHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", cfg.ServerAddress).
			Str("store", cfg.DBDriver).
			Str("llm", backend.Name()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

func newBackend(ctx context.Context, cfg config.Config) (llm.Backend, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIBackend(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTemperature), nil
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return llm.NewGeminiBackend(client, cfg.GeminiModel, cfg.LLMTemperature), nil
	default:
		return llm.NewOllamaBackend(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTemperature,
			&http.Client{Timeout: cfg.LLMTimeout}), nil
	}
}
