package model

import (
	"github.com/cloudwego/eino/schema"
)

// Pricing is USD cost per 1M text tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// Standard-tier Gemini text pricing. Unknown models resolve to zero so cost
// logging degrades to token counts only.
var defaultPricing = map[string]Pricing{
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
}

// ResolvePricing returns the pricing table entry for a model.
func ResolvePricing(model string) Pricing {
	return defaultPricing[model]
}

// ComputeCost converts token usage to USD using per-1M pricing.
func ComputeCost(usage *schema.TokenUsage, p Pricing) (inputCost, outputCost, total float64) {
	if usage == nil {
		return 0, 0, 0
	}
	inputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	return inputCost, outputCost, inputCost + outputCost
}
