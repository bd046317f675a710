package agents

import (
	"context"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/support/prompts"
	"github.com/telsupport/server/pkg/logx"
)

// RejectionMessage is returned to callers whose query falls outside the
// telecom domain.
const RejectionMessage = "I apologize, but I can only assist with Telecom-related queries (Billing, Network, Plans, Technical Support). I cannot help with other topics."

// RelevanceFilter is the single-call gate judging whether a query belongs to
// the telecom domain at all. Every handler runs it before doing any work.
type RelevanceFilter struct {
	cm        einomodel.BaseChatModel
	modelName string
}

func NewRelevanceFilter(cm einomodel.BaseChatModel, modelName string) *RelevanceFilter {
	return &RelevanceFilter{cm: cm, modelName: modelName}
}

// Check returns whether the query is in-domain and, when it is not, the
// rejection message to show the caller.
//
// The policy is deliberately lenient and fails OPEN: only a reply containing
// the token "NO" rejects; ambiguous or malformed output, and any error from
// the underlying call, count as relevant so a flaky judge never blocks users.
func (f *RelevanceFilter) Check(ctx context.Context, query string) (bool, string) {
	request, err := prompts.RenderRelevance(ctx, query)
	if err != nil {
		logx.Warn().Err(err).Msg("relevance prompt render failed; failing open")
		return true, ""
	}

	reply, err := generate(ctx, f.cm, f.modelName, []*schema.Message{schema.UserMessage(request)})
	if err != nil {
		logx.Warn().Err(err).Msg("relevance check failed; failing open")
		return true, ""
	}

	if strings.Contains(strings.ToUpper(strings.TrimSpace(reply)), "NO") {
		return false, RejectionMessage
	}
	return true, ""
}
