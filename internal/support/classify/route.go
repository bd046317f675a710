package classify

import (
	"github.com/telsupport/server/internal/support/model"
)

// Handler identifiers. These double as graph node names.
const (
	HandlerBilling   = "billing_handler"
	HandlerNetwork   = "network_handler"
	HandlerPlan      = "plan_handler"
	HandlerKnowledge = "knowledge_handler"
)

// Route maps a category to its handler identifier. It is a pure total
// function: anything outside the valid category set routes to the knowledge
// handler, a defensive default that is unreachable given Classify's
// guarantee.
func Route(c model.Category) string {
	switch c {
	case model.CategoryBilling:
		return HandlerBilling
	case model.CategoryNetwork:
		return HandlerNetwork
	case model.CategoryPlan:
		return HandlerPlan
	default:
		return HandlerKnowledge
	}
}
