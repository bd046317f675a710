// Package prompts holds the embedded prompt templates and renders them
// through the Eino prompt component so prompt callbacks fire.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/store"
)

//go:embed template/classifier_prompt.txt
var classifierPrompt string

//go:embed template/relevance_prompt.txt
var relevancePrompt string

//go:embed template/billing_system_prompt.txt
var billingSystemPrompt string

//go:embed template/billing_simple_prompt.txt
var billingSimplePrompt string

//go:embed template/billing_complex_prompt.txt
var billingComplexPrompt string

//go:embed template/plan_prompt.txt
var planPrompt string

//go:embed template/network_diagnostics_prompt.txt
var networkDiagnosticsPrompt string

//go:embed template/network_solution_prompt.txt
var networkSolutionPrompt string

//go:embed template/network_seed_prompt.txt
var networkSeedPrompt string

//go:embed template/knowledge_prompt.txt
var knowledgePrompt string

// render formats a template with Go-template variables via the Eino prompt
// component, which also emits prompt callbacks for observers.
func render(ctx context.Context, tpl string, vars map[string]any) (string, error) {
	msgs, err := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(tpl),
	).Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("render prompt: empty result")
	}
	return msgs[0].Content, nil
}

// RenderClassifier builds the classification request for a query, optionally
// preceded by bounded conversation context.
func RenderClassifier(ctx context.Context, query, conversationContext string) (string, error) {
	return render(ctx, classifierPrompt, map[string]any{
		"Query":   query,
		"Context": conversationContext,
	})
}

// RenderRelevance builds the binary domain-relevance check for a query.
func RenderRelevance(ctx context.Context, query string) (string, error) {
	return render(ctx, relevancePrompt, map[string]any{"Query": query})
}

// BillingSystem is the billing specialist persona.
func BillingSystem() string { return billingSystemPrompt }

// RenderBillingSimple builds the terse bill-summary task.
func RenderBillingSimple(ctx context.Context, query string, d *store.BillingDetails) (string, error) {
	return render(ctx, billingSimplePrompt, billingVars(query, d, ""))
}

// RenderBillingComplex builds the detailed comparative-analysis task.
func RenderBillingComplex(ctx context.Context, query string, d *store.BillingDetails, knowledge string) (string, error) {
	return render(ctx, billingComplexPrompt, billingVars(query, d, knowledge))
}

func billingVars(query string, d *store.BillingDetails, knowledge string) map[string]any {
	return map[string]any{
		"Query":             query,
		"Name":              d.Name,
		"Email":             d.Email,
		"ServicePlanID":     d.ServicePlanID,
		"DataUsedGB":        fmt.Sprintf("%.1f", d.DataUsedGB),
		"VoiceMinutesUsed":  d.VoiceMinutesUsed,
		"SMSCountUsed":      d.SMSCountUsed,
		"AdditionalCharges": fmt.Sprintf("%.0f", d.AdditionalCharges),
		"TotalBillAmount":   fmt.Sprintf("%.0f", d.TotalBillAmount),
		"MonthlyCost":       fmt.Sprintf("%.0f", d.MonthlyCost),
		"DataLimitGB":       fmt.Sprintf("%.0f", d.DataLimitGB),
		"VoiceMinutes":      d.VoiceMinutes,
		"SMSCount":          d.SMSCount,
		"Knowledge":         knowledge,
	}
}

// RenderPlan builds the plan-advisor request with pre-fetched usage and the
// plan catalogue.
func RenderPlan(ctx context.Context, query, customerID string, usage *store.UsageSummary, plans []store.Plan, knowledge string) (string, error) {
	usageText := "No usage data found."
	if usage != nil {
		usageText = fmt.Sprintf("Plan %s (%s): %.1fGB data, %d voice minutes, %d SMS used",
			usage.ServicePlanID, usage.PlanName, usage.DataUsedGB, usage.VoiceMinutesUsed, usage.SMSCountUsed)
	}

	var catalogue strings.Builder
	for _, p := range plans {
		fmt.Fprintf(&catalogue, "- %s %s: ₹%.0f/month, %.0fGB data, %d voice minutes, %d SMS\n",
			p.PlanID, p.Name, p.MonthlyCost, p.DataLimitGB, p.VoiceMinutes, p.SMSCount)
	}

	return render(ctx, planPrompt, map[string]any{
		"Query":      query,
		"CustomerID": customerID,
		"Usage":      usageText,
		"Plans":      catalogue.String(),
		"Knowledge":  knowledge,
	})
}

// NetworkDiagnosticsSystem is the diagnostics specialist persona.
func NetworkDiagnosticsSystem() string { return networkDiagnosticsPrompt }

// NetworkSolutionSystem is the solution integrator persona.
func NetworkSolutionSystem() string { return networkSolutionPrompt }

// RenderNetworkSeed builds the opening message of the diagnostics exchange.
func RenderNetworkSeed(ctx context.Context, query, customerContext, knowledge string) (string, error) {
	return render(ctx, networkSeedPrompt, map[string]any{
		"Query":           query,
		"CustomerContext": customerContext,
		"Knowledge":       knowledge,
	})
}

// RenderKnowledge builds the documentation-grounded answer request.
func RenderKnowledge(ctx context.Context, query, knowledge string) (string, error) {
	return render(ctx, knowledgePrompt, map[string]any{
		"Query":     query,
		"Knowledge": knowledge,
	})
}
