package agents

import (
	"strings"
)

// Deterministic query-shape rules. Each rule is a trigger set evaluated by
// case-insensitive substring match; the tables are the single source of
// truth and are unit-tested per rule.

// billingComplexTriggers mark a request for explanation or analysis.
var billingComplexTriggers = []string{
	"why", "explain", "reason", "break down", "analyze", "details",
	"high", "expensive", "tax", "fee", "charge",
}

// billingSimpleTriggers mark a plain status check.
var billingSimpleTriggers = []string{
	"what's my bill", "whats my bill", "how much", "bill amount",
	"what do i owe", "current bill", "total bill",
}

// planCancellationTriggers intercept cancellation-type requests before any
// model call.
var planCancellationTriggers = []string{
	"cancel", "close", "terminate", "deactivate", "end my plan", "stop my plan",
}

// BillingQueryShape selects the billing prompt template.
type BillingQueryShape int

const (
	// BillingDetailed asks for the comparative-analysis template.
	BillingDetailed BillingQueryShape = iota
	// BillingSimple asks for the terse summary template.
	BillingSimple
)

// ClassifyBillingQuery applies the billing rule table: a query is simple ONLY
// if it matches a simple trigger AND no complex trigger, so "why is my bill
// so high" stays detailed even though it mentions the bill.
func ClassifyBillingQuery(query string) BillingQueryShape {
	q := strings.ToLower(query)
	if containsAny(q, billingComplexTriggers) {
		return BillingDetailed
	}
	if containsAny(q, billingSimpleTriggers) {
		return BillingSimple
	}
	return BillingDetailed
}

// IsCancellationRequest reports whether the plan rule table intercepts the
// query with the fixed cancellation procedure.
func IsCancellationRequest(query string) bool {
	return containsAny(strings.ToLower(query), planCancellationTriggers)
}

func containsAny(haystack string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
