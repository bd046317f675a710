package agents

import (
	"context"
	"errors"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/prompts"
	"github.com/telsupport/server/pkg/logx"
)

// BillingAgent answers bill, charge and payment questions from the caller's
// most recent billing record.
type BillingAgent struct {
	cm        einomodel.BaseChatModel
	modelName string
	store     *store.Store
	knowledge Retriever
	relevance *RelevanceFilter
}

func NewBillingAgent(cm einomodel.BaseChatModel, modelName string, st *store.Store, kn Retriever, rf *RelevanceFilter) *BillingAgent {
	return &BillingAgent{cm: cm, modelName: modelName, store: st, knowledge: kn, relevance: rf}
}

// Handle processes a billing query. The response text is the only output;
// failures are converted to user-facing error text.
func (a *BillingAgent) Handle(ctx context.Context, query, customerEmail string) string {
	if ok, rejection := a.relevance.Check(ctx, query); !ok {
		return rejection
	}

	customerID := resolveCustomerID(ctx, a.store, customerEmail)

	details, err := a.store.BillingDetailsByID(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		return "Could not find billing records for this customer."
	}
	if err != nil {
		return errorText(model.CategoryBilling, err)
	}

	knowledgeContext := a.knowledge.Retrieve(ctx, model.CategoryBilling, query)

	var task string
	switch ClassifyBillingQuery(query) {
	case BillingSimple:
		task, err = prompts.RenderBillingSimple(ctx, query, details)
	default:
		task, err = prompts.RenderBillingComplex(ctx, query, details, knowledgeContext)
	}
	if err != nil {
		return errorText(model.CategoryBilling, err)
	}

	response, err := generate(ctx, a.cm, a.modelName, []*schema.Message{
		schema.SystemMessage(prompts.BillingSystem()),
		schema.UserMessage(task),
	})
	if err != nil {
		return errorText(model.CategoryBilling, err)
	}
	return response
}

// resolveCustomerID maps a caller email to a customer id, falling back to the
// fixed demo identity when the email is missing or unknown. The fallback is a
// deliberate demo concession; every use is logged so deployments can audit it.
func resolveCustomerID(ctx context.Context, st *store.Store, email string) string {
	if email == "" {
		logx.Warn().Msg("no caller email; using default customer id")
		return store.DefaultCustomerID
	}
	id, err := st.CustomerIDByEmail(ctx, email)
	if err != nil {
		logx.Warn().Err(err).Str("email", email).Msg("customer lookup failed; using default customer id")
		return store.DefaultCustomerID
	}
	return id
}
