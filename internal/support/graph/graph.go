// Package graph composes the fixed-topology support routing graph:
// classify, dispatch to exactly one domain handler, finalize.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"google.golang.org/genai"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/agents"
	"github.com/telsupport/server/internal/support/classify"
	"github.com/telsupport/server/internal/support/conversations"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/observers"
	"github.com/telsupport/server/internal/support/prompts"
	"github.com/telsupport/server/pkg/logx"
)

// Runner executes the compiled graph for one query.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (model.RouteResult, error)
}

// Config holds everything needed to compose the full support graph
// end-to-end. This is a convenience layer over GraphConfig that also
// constructs the chat models and domain handlers.
type Config struct {
	Client           *genai.Client
	ClassifierModel  model.ClassifierModelConfig
	ResponderModel   model.ResponderModelConfig
	Conversation     model.ConversationConfig
	Exchange         model.ExchangeConfig
	ConversationRepo model.ConversationRepository
	Store            *store.Store
	Knowledge        agents.Retriever
}

// GraphConfig holds the assembled components the graph is built from.
type GraphConfig struct {
	Classifier      *classify.Classifier
	MessagesManager *conversations.Manager
	Handlers        map[string]Handler
}

// GraphBuilder handles the construction of the support routing graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, model.RouteResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, model.RouteResult]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (model.RouteResult, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewCallbacks()))
}

// BuildSupportGraph composes chat models, domain handlers, and the
// conversation manager, builds the graph, and returns a Runner.
func BuildSupportGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is nil")
	}

	cms, err := NewChatModels(ctx, ChatModelConfig{
		Client:        cfg.Client,
		ClassifierCfg: &cfg.ClassifierModel,
		ResponderCfg:  &cfg.ResponderModel,
	})
	if err != nil {
		return nil, err
	}

	relevance := agents.NewRelevanceFilter(cms.Responder, cms.ResponderModelName)
	exchange := agents.NewExchange(
		cms.Responder, cms.Responder,
		prompts.NetworkDiagnosticsSystem(), prompts.NetworkSolutionSystem(),
		cms.ResponderModelName, cfg.Exchange.MaxRounds,
	)

	handlers := map[string]Handler{
		classify.HandlerBilling:   agents.NewBillingAgent(cms.Responder, cms.ResponderModelName, cfg.Store, cfg.Knowledge, relevance),
		classify.HandlerNetwork:   agents.NewNetworkAgent(exchange, cfg.Store, cfg.Knowledge, relevance),
		classify.HandlerPlan:      agents.NewPlanAgent(cms.Responder, cms.ResponderModelName, cfg.Store, cfg.Knowledge, relevance),
		classify.HandlerKnowledge: agents.NewKnowledgeAgent(cms.Responder, cms.ResponderModelName, cfg.Knowledge, relevance),
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Classifier:      classify.New(cms.Classifier),
		MessagesManager: conversations.NewManager(cfg.ConversationRepo, cfg.Conversation),
		Handlers:        handlers,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Support graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and compiles the routing graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, model.RouteResult], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Classifier == nil {
		return nil, fmt.Errorf("classifier is nil")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	for _, name := range []string{classify.HandlerBilling, classify.HandlerNetwork, classify.HandlerPlan, classify.HandlerKnowledge} {
		if config.Handlers[name] == nil {
			return nil, fmt.Errorf("handler %q is nil", name)
		}
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, model.RouteResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.RoutingState {
				return &model.RoutingState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(NodeClassifier,
		NewClassifierNode(b.config.MessagesManager, b.config.Classifier),
		compose.WithStatePreHandler(NewClassifierPreHandler()),
		compose.WithStatePostHandler(NewClassifierPostHandler()),
	)

	for name, handler := range b.config.Handlers {
		b.graph.AddLambdaNode(name,
			NewHandlerNode(handler),
			compose.WithStatePostHandler(NewHandlerPostHandler()),
		)
	}

	b.graph.AddLambdaNode(NodeFinalizer,
		NewFinalizerNode(b.config.MessagesManager),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, NodeClassifier},
		{classify.HandlerBilling, NodeFinalizer},
		{classify.HandlerNetwork, NodeFinalizer},
		{classify.HandlerPlan, NodeFinalizer},
		{classify.HandlerKnowledge, NodeFinalizer},
		{NodeFinalizer, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the classification branch that selects exactly one
// handler per query.
func (b *GraphBuilder) addBranches() error {
	handlerBranch := compose.NewGraphBranch(
		NewHandlerCondition(),
		map[string]bool{
			classify.HandlerBilling:   true,
			classify.HandlerNetwork:   true,
			classify.HandlerPlan:      true,
			classify.HandlerKnowledge: true,
		},
	)
	if err := b.graph.AddBranch(NodeClassifier, handlerBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding handler branch")
		return fmt.Errorf("error adding handler branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, model.RouteResult], error) {
	// classify -> handler -> finalize, so the step budget only needs slack
	// for the branch evaluation.
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
