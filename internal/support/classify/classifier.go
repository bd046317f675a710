// Package classify decides which support handler answers a query: a
// model-backed intent classifier with a hard knowledge fallback, and the pure
// routing table from categories to handler identifiers.
package classify

import (
	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/prompts"
	"github.com/telsupport/server/pkg/logx"
)

const systemInstruction = "You are a precise classifier. Follow instructions exactly."

// Classifier performs model-backed intent classification.
type Classifier struct {
	cm einomodel.BaseChatModel
}

func New(cm einomodel.BaseChatModel) *Classifier {
	return &Classifier{cm: cm}
}

// Classify returns the classification for a query, with the optional bounded
// conversation context included in the request. It never fails: every error
// on the classification path degrades to the knowledge fallback, which is why
// there is no error return.
func (c *Classifier) Classify(ctx context.Context, query, conversationContext string) model.Classification {
	request, err := prompts.RenderClassifier(ctx, query, conversationContext)
	if err != nil {
		logx.Error().Err(err).Msg("classifier prompt render failed; falling back to knowledge")
		return Fallback()
	}

	out, err := c.cm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemInstruction),
		schema.UserMessage(request),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("classification call failed; falling back to knowledge")
		return Fallback()
	}
	if out == nil {
		logx.Warn().Msg("classification returned no message; falling back to knowledge")
		return Fallback()
	}

	classification := ParseReply(out.Content)
	logx.Debug().
		Str("primary", classification.Primary.String()).
		Bool("multi_intent", classification.MultiIntent).
		Msg("query classified")
	return classification
}
