package graph

import (
	"fmt"
	"strings"

	"github.com/telsupport/server/internal/support/model"
)

// NoResponseMessage is returned when the selected handler produced no text.
const NoResponseMessage = "I wasn't able to produce a response to your request. Please try rephrasing your question."

const multiIntentFooter = "\n\n💡 *I noticed you also asked about %s. Feel free to ask about that separately!*"

// intentLabels maps categories to the human-readable phrasing used in the
// multi-intent footer.
var intentLabels = map[model.Category]string{
	model.CategoryBilling:   "billing",
	model.CategoryNetwork:   "network issues",
	model.CategoryPlan:      "plan recommendations",
	model.CategoryKnowledge: "general questions",
}

// Finalize composes the final response text from the handler output. When the
// classification carried more than one intent, a footer names the intents
// that were not acted on. An empty handler output is replaced with
// NoResponseMessage.
func Finalize(handlerText string, c model.Classification) string {
	text := strings.TrimSpace(handlerText)
	if text == "" {
		text = NoResponseMessage
	}

	if !c.MultiIntent || len(c.AllIntents) < 2 {
		return text
	}

	var others []string
	for _, intent := range c.AllIntents {
		if intent == c.Primary {
			continue
		}
		others = append(others, intentLabels[intent])
	}
	if len(others) == 0 {
		return text
	}

	return text + fmt.Sprintf(multiIntentFooter, strings.Join(others, ", "))
}
