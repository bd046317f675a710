package model

import (
	"github.com/cloudwego/eino/schema"
)

// Category is one of the four supported query domains.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryNetwork   Category = "network"
	CategoryPlan      Category = "plan"
	CategoryKnowledge Category = "knowledge"
)

// Categories lists the valid categories in their canonical order.
var Categories = []Category{CategoryBilling, CategoryNetwork, CategoryPlan, CategoryKnowledge}

// Valid reports whether c is a member of the supported category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryBilling, CategoryNetwork, CategoryPlan, CategoryKnowledge:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Classification is the immutable outcome of intent classification.
// AllIntents is non-empty iff MultiIntent is true, preserves the order the
// model emitted the categories, and always contains Primary.
type Classification struct {
	Primary     Category   `json:"primary"`
	MultiIntent bool       `json:"multi_intent"`
	AllIntents  []Category `json:"all_intents,omitempty"`
}

// QueryInput is a single support query entering the routing graph.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
	CustomerEmail  string `json:"customer_email,omitempty"`
}

// RouteResult leaves the routing graph: the primary classification (so the
// caller can render an agent indicator) plus the final synthesized text.
type RouteResult struct {
	Classification Classification `json:"classification"`
	Response       string         `json:"response"`
}

// RoutingState is the graph-local state threaded through one invocation.
//
// Access discipline follows the Eino local-state contract: reads and writes
// happen only inside WithStatePreHandler / WithStatePostHandler /
// compose.ProcessState, which Eino serializes, so no mutex is needed.
// Each field has exactly one writing stage:
//
//	ConversationID, Query, CustomerEmail — classifier pre-handler
//	Classification                       — classifier post-handler
//	HandlerText                          — the selected handler's post-handler
type RoutingState struct {
	ConversationID string
	Query          string
	CustomerEmail  string
	Classification Classification
	HandlerText    string
}

// ConversationHistory is loaded conversation data with its identifier.
type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}
