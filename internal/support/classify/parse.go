package classify

import (
	"strings"

	"github.com/telsupport/server/internal/support/model"
)

const multiIntentPrefix = "multi-intent"

// Fallback is the terminal classification for every failure on the
// classification path: model errors, malformed replies, unknown categories.
func Fallback() model.Classification {
	return model.Classification{Primary: model.CategoryKnowledge}
}

// ParseReply interprets the classifier model's reply.
//
// The reply is lower-cased and trimmed. A reply starting with "multi-intent"
// is split on commas after the prefix; invalid tokens are dropped, order is
// preserved, and the primary category is the first valid token found. Any
// reply that yields no valid category degrades to the knowledge fallback.
func ParseReply(reply string) model.Classification {
	result := strings.ToLower(strings.TrimSpace(reply))

	if strings.HasPrefix(result, multiIntentPrefix) {
		rest := strings.TrimPrefix(result, multiIntentPrefix)
		rest = strings.TrimPrefix(strings.TrimSpace(rest), ":")

		var intents []model.Category
		for _, token := range strings.Split(rest, ",") {
			if c := model.Category(strings.TrimSpace(token)); c.Valid() {
				intents = append(intents, c)
			}
		}
		if len(intents) == 0 {
			return Fallback()
		}
		return model.Classification{
			Primary:     intents[0],
			MultiIntent: true,
			AllIntents:  intents,
		}
	}

	if c := model.Category(result); c.Valid() {
		return model.Classification{Primary: c}
	}
	return Fallback()
}
