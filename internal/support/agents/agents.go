// Package agents implements the four domain responders (billing, network,
// plan, knowledge) and the shared relevance gate. Handlers never return
// errors: every failure becomes user-facing text, so the routing graph only
// ever sees strings.
package agents

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// Retriever serves short advisory passages for a query from a domain's
// document collection. Implementations are best-effort: they return "" on any
// internal failure and never error.
type Retriever interface {
	Retrieve(ctx context.Context, category model.Category, query string) string
}

// errorText converts a handler-level failure into the user-facing message the
// graph expects. Handler errors never propagate past this boundary.
func errorText(domain model.Category, err error) string {
	logx.Error().Err(err).Str("domain", domain.String()).Msg("handler failed")
	return fmt.Sprintf("Error processing %s query: %v", domain, err)
}

// generate invokes a chat model and logs token usage with estimated cost.
func generate(ctx context.Context, cm einomodel.BaseChatModel, modelName string, msgs []*schema.Message) (string, error) {
	out, err := cm.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	logUsage(modelName, out)
	return out.Content, nil
}

func logUsage(modelName string, out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	logx.Debug().
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
