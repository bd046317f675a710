package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/telsupport/server/internal/support/classify"
	"github.com/telsupport/server/internal/support/conversations"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// Graph node names. Handler node names live in the classify package next to
// the routing table that selects them.
const (
	NodeClassifier = "intent_classifier"
	NodeFinalizer  = "response_finalizer"
)

// Handler is a domain handler invoked with the raw query and the caller's
// email. Handlers never return errors; failures surface as response text.
type Handler interface {
	Handle(ctx context.Context, query, customerEmail string) string
}

// NewClassifierPreHandler seeds the routing state from the incoming query.
func NewClassifierPreHandler() func(context.Context, model.QueryInput, *model.RoutingState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.RoutingState) (model.QueryInput, error) {
		s.ConversationID = in.ConversationID
		s.Query = in.Query
		s.CustomerEmail = in.CustomerEmail
		return in, nil
	}
}

// NewClassifierNode creates the node that records the query in conversation
// history and classifies its intent. Classification never fails; history
// errors degrade to an empty context.
func NewClassifierNode(mm *conversations.Manager, classifier *classify.Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (model.Classification, error) {
		conversationCtx, err := mm.ClassifierContext(ctx, in.ConversationID, in.Query)
		if err != nil {
			logx.Warn().
				Str("conversation_id", in.ConversationID).
				Err(err).
				Msg("Conversation context unavailable; classifying without history")
			conversationCtx = ""
		}
		return classifier.Classify(ctx, in.Query, conversationCtx), nil
	})
}

// NewClassifierPostHandler records the classification outcome in state.
func NewClassifierPostHandler() func(context.Context, model.Classification, *model.RoutingState) (model.Classification, error) {
	return func(ctx context.Context, out model.Classification, s *model.RoutingState) (model.Classification, error) {
		s.Classification = out
		logx.Debug().
			Str("conversation_id", s.ConversationID).
			Str("primary", out.Primary.String()).
			Bool("multi_intent", out.MultiIntent).
			Msg("Query classified")
		return out, nil
	}
}

// NewHandlerCondition creates the branch condition that picks exactly one
// handler node from the primary category.
func NewHandlerCondition() func(context.Context, model.Classification) (string, error) {
	return func(ctx context.Context, c model.Classification) (string, error) {
		return classify.Route(c.Primary), nil
	}
}

// NewHandlerNode wraps a domain handler as a graph node. The query and
// caller identity are read back from state so every handler node shares one
// shape.
func NewHandlerNode(h Handler) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ model.Classification) (string, error) {
		var query, email string
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.RoutingState) error {
			query = s.Query
			email = s.CustomerEmail
			return nil
		}); err != nil {
			return "", fmt.Errorf("read routing state: %w", err)
		}
		return h.Handle(ctx, query, email), nil
	})
}

// NewHandlerPostHandler records the handler output in state.
func NewHandlerPostHandler() func(context.Context, string, *model.RoutingState) (string, error) {
	return func(ctx context.Context, out string, s *model.RoutingState) (string, error) {
		s.HandlerText = out
		return out, nil
	}
}

// NewFinalizerNode creates the node that merges the handler output with the
// multi-intent footer and persists the assistant turn. Persistence failures
// are logged but never block the response.
func NewFinalizerNode(mm *conversations.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, handlerText string) (model.RouteResult, error) {
		var state model.RoutingState
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.RoutingState) error {
			state = *s
			return nil
		}); err != nil {
			return model.RouteResult{}, fmt.Errorf("read routing state: %w", err)
		}

		response := Finalize(handlerText, state.Classification)

		if err := mm.SaveResponse(ctx, state.ConversationID, response); err != nil {
			logx.Error().
				Str("conversation_id", state.ConversationID).
				Err(err).
				Msg("Error saving assistant response")
		}

		return model.RouteResult{
			Classification: state.Classification,
			Response:       response,
		}, nil
	})
}
