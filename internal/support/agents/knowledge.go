package agents

import (
	"context"
	"regexp"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/prompts"
)

// dollarAmount rewrites $N amounts to ₹N; the documentation corpus predates
// the currency switch.
var dollarAmount = regexp.MustCompile(`\$(\d+)`)

// KnowledgeAgent answers general informational questions from the document
// corpus. It requires no caller identity.
type KnowledgeAgent struct {
	cm        einomodel.BaseChatModel
	modelName string
	knowledge Retriever
	relevance *RelevanceFilter
}

func NewKnowledgeAgent(cm einomodel.BaseChatModel, modelName string, kn Retriever, rf *RelevanceFilter) *KnowledgeAgent {
	return &KnowledgeAgent{cm: cm, modelName: modelName, knowledge: kn, relevance: rf}
}

// Handle processes an informational query against the general collection.
func (a *KnowledgeAgent) Handle(ctx context.Context, query, _ string) string {
	if ok, rejection := a.relevance.Check(ctx, query); !ok {
		return rejection
	}

	knowledgeContext := a.knowledge.Retrieve(ctx, model.CategoryKnowledge, query)

	request, err := prompts.RenderKnowledge(ctx, query, knowledgeContext)
	if err != nil {
		return errorText(model.CategoryKnowledge, err)
	}

	response, err := generate(ctx, a.cm, a.modelName, []*schema.Message{schema.UserMessage(request)})
	if err != nil {
		return errorText(model.CategoryKnowledge, err)
	}

	return dollarAmount.ReplaceAllString(response, "₹$1")
}
