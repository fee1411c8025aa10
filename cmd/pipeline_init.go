package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/crm"
	"github.com/flowlogic-ai/lead-intake/internal/notify"
	"github.com/flowlogic-ai/lead-intake/internal/pipeline"
	"github.com/flowlogic-ai/lead-intake/internal/research"
	"github.com/flowlogic-ai/lead-intake/internal/store"
	"github.com/flowlogic-ai/lead-intake/internal/styleguide"
	"github.com/flowlogic-ai/lead-intake/internal/webpresence"
	anthropicpkg "github.com/flowlogic-ai/lead-intake/pkg/anthropic"
	"github.com/flowlogic-ai/lead-intake/pkg/notion"
	"github.com/flowlogic-ai/lead-intake/pkg/postmark"
)

// pipelineEnv holds the initialized store and orchestrator shared by the
// serve/evaluate commands.
type pipelineEnv struct {
	Store        store.Store
	Orchestrator *pipeline.Orchestrator
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the store, API clients, and the orchestrator. Callers
// should defer env.Close(). Integrations without credentials are constructed
// anyway; each stage checks its own configuration and degrades to a skip.
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	notionClient := notion.NewClient(cfg.Notion.Token, notion.WithRateLimit(cfg.Notion.RatePerSecond))
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	postmarkClient := postmark.NewClient(cfg.Postmark.ServerToken)

	if !cfg.Notion.Configured() {
		zap.L().Warn("notion not configured, CRM recording disabled")
	}
	if !cfg.Anthropic.Configured() {
		zap.L().Warn("anthropic not configured, research and style guides disabled")
	}
	if !cfg.Postmark.Configured() {
		zap.L().Warn("postmark not configured, email notifications disabled")
	}

	orch := pipeline.New(
		cfg,
		st,
		webpresence.New(cfg.Presence),
		research.New(anthropicClient, cfg.Anthropic),
		styleguide.New(anthropicClient, cfg.Anthropic),
		crm.New(notionClient, cfg.Notion),
		notify.New(postmarkClient, cfg.Postmark),
	)

	return &pipelineEnv{
		Store:        st,
		Orchestrator: orch,
	}, nil
}

// initStore opens the audit store without building the rest of the pipeline.
func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}
