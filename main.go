package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/telsupport/server/internal/core"
	"github.com/telsupport/server/internal/knowledge"
	"github.com/telsupport/server/internal/server"
	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/graph"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/repo"
	"github.com/telsupport/server/pkg/logx"
	"github.com/telsupport/server/pkg/redisx"
)

// AppConfig defines all configurable parameters for the support server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis redisx.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Routing configs
	Classifier   model.ClassifierModelConfig
	Responder    model.ResponderModelConfig
	Conversation model.ConversationConfig
	Exchange     model.ExchangeConfig
	Store        model.StoreConfig
	Knowledge    model.KnowledgeConfig
	Server       model.ServerConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(core.ParseEnvironment(envCfg.Env))

	rdb, err := envCfg.Redis.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Str("ttl", envCfg.Conversation.TTL).Err(err).Msg("Invalid CONVERSATION_TTL")
	}

	st, err := store.Open(envCfg.Store.Path)
	if err != nil {
		logx.Fatal().Str("path", envCfg.Store.Path).Err(err).Msg("Failed to open customer store")
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise store schema")
	}
	if envCfg.Store.Seed {
		if err := st.Seed(ctx); err != nil {
			logx.Fatal().Err(err).Msg("Failed to seed customer store")
		}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  envCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if envCfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = envCfg.BaseURL
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	index, err := knowledge.New(envCfg.Knowledge, knowledge.NewGenAIEmbedding(client, envCfg.Knowledge.EmbeddingModel))
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to open knowledge index")
	}
	if err := index.IndexDocuments(ctx, envCfg.Knowledge.DocumentsPath); err != nil {
		logx.Warn().Err(err).Msg("Document indexing incomplete; retrieval degrades to empty context")
	}

	runner, err := graph.BuildSupportGraph(ctx, graph.Config{
		Client:           client,
		ClassifierModel:  envCfg.Classifier,
		ResponderModel:   envCfg.Responder,
		Conversation:     envCfg.Conversation,
		Exchange:         envCfg.Exchange,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Store:            st,
		Knowledge:        index,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build routing graph")
	}

	srv := &http.Server{
		Addr:    envCfg.Server.Addr,
		Handler: server.New(runner, st).Router(),
	}

	go func() {
		logx.Info().Str("addr", envCfg.Server.Addr).Msg("Support server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logx.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
