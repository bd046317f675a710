package agents

import (
	"context"
	"errors"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/internal/support/prompts"
)

// cancellationProcedure is the fixed answer for cancellation-type requests.
// The rule table returns it without any model invocation.
const cancellationProcedure = `To cancel your plan, please follow these steps:

1. **Contact Customer Service:**
   - Call our helpline or visit the nearest service center
   - Have your account details ready (Customer ID, registered mobile number)

2. **Cancellation Process:**
   - Request plan cancellation
   - Clear any pending dues (if applicable)
   - Return any rented equipment (SIM card replacement may be required)

3. **Important Notes:**
   - You may be charged for the current billing cycle
   - Any unused balance may be refunded as per our policy
   - Cancellation takes 24-48 hours to process

For immediate assistance, please contact our customer service team.`

// PlanAgent recommends service plans from the caller's usage and the plan
// catalogue.
type PlanAgent struct {
	cm        einomodel.BaseChatModel
	modelName string
	store     *store.Store
	knowledge Retriever
	relevance *RelevanceFilter
}

func NewPlanAgent(cm einomodel.BaseChatModel, modelName string, st *store.Store, kn Retriever, rf *RelevanceFilter) *PlanAgent {
	return &PlanAgent{cm: cm, modelName: modelName, store: st, knowledge: kn, relevance: rf}
}

// Handle processes a plan query. Cancellation requests short-circuit to the
// fixed procedure text before any model call.
func (a *PlanAgent) Handle(ctx context.Context, query, customerEmail string) string {
	if ok, rejection := a.relevance.Check(ctx, query); !ok {
		return rejection
	}

	if IsCancellationRequest(query) {
		return cancellationProcedure
	}

	customerID := resolveCustomerID(ctx, a.store, customerEmail)

	usage, err := a.store.UsageSummaryByID(ctx, customerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return errorText(model.CategoryPlan, err)
	}

	plans, err := a.store.AvailablePlans(ctx)
	if err != nil {
		return errorText(model.CategoryPlan, err)
	}

	knowledgeContext := a.knowledge.Retrieve(ctx, model.CategoryPlan, query)

	request, err := prompts.RenderPlan(ctx, query, customerID, usage, plans, knowledgeContext)
	if err != nil {
		return errorText(model.CategoryPlan, err)
	}

	response, err := generate(ctx, a.cm, a.modelName, []*schema.Message{schema.UserMessage(request)})
	if err != nil {
		return errorText(model.CategoryPlan, err)
	}
	return response
}
