package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/thewalkingjumbo/agency-ops/assistant/contract"
	"github.com/thewalkingjumbo/agency-ops/assistant/orchestrator"
	"github.com/thewalkingjumbo/agency-ops/assistant/prompt"
	toolx "github.com/thewalkingjumbo/agency-ops/assistant/tool"
	"github.com/thewalkingjumbo/agency-ops/crm"
	"github.com/thewalkingjumbo/agency-ops/httpapi"
	configx "github.com/thewalkingjumbo/agency-ops/pkg/config"
	geminix "github.com/thewalkingjumbo/agency-ops/pkg/gemini"
	_ "github.com/thewalkingjumbo/agency-ops/pkg/logger/autoload"
	openrouterx "github.com/thewalkingjumbo/agency-ops/pkg/openrouter"
	"github.com/thewalkingjumbo/agency-ops/store"
)

type AppConfig struct {
	ListenAddr        string        `envconfig:"LISTEN_ADDR" split_words:"true" default:":8080"`
	AssistantProvider string        `envconfig:"ASSISTANT_PROVIDER" split_words:"true" default:"gemini"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("")

	dbCfg := configx.MustNew[store.Config]("DB")
	db, err := store.Open(*dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := store.CreateSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap schema")
	}

	leadStore := store.NewLeadStore(db)
	leadSvc := crm.NewLeadService(leadStore)

	catalog := toolx.NewCatalog(leadStore)
	model, err := newChatModel(ctx, appCfg.AssistantProvider, catalog.Declarations())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build chat model")
	}
	assistant, err := orchestrator.New(model, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build orchestrator")
	}

	api := httpapi.NewServer(leadSvc, store.NewPortfolioStore(db), store.NewPricingStore(db), assistant, db)
	server := &http.Server{
		Addr:              appCfg.ListenAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", appCfg.ListenAddr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newChatModel picks the assistant backend. Gemini is the default; OpenRouter
// is the drop-in alternative for models behind an OpenAI-compatible API.
func newChatModel(ctx context.Context, provider string, decls []contractx.ToolDecl) (contractx.ChatModel, error) {
	system := prompt.SystemInstruction()
	switch provider {
	case "", "gemini":
		cfg := configx.MustNew[geminix.Config]("GEMINI")
		return geminix.NewModel(ctx, *cfg, system, decls)
	case "openrouter":
		cfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
		return openrouterx.NewModel(*cfg, system, decls)
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", provider)
	}
}
