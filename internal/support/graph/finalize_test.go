package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telsupport/server/internal/support/model"
)

func TestFinalize_SingleIntentReturnsTextUnchanged(t *testing.T) {
	c := model.Classification{Primary: model.CategoryBilling}

	out := Finalize("Your bill is ₹759.", c)

	assert.Equal(t, "Your bill is ₹759.", out)
}

func TestFinalize_MultiIntentAppendsFooter(t *testing.T) {
	c := model.Classification{
		Primary:     model.CategoryBilling,
		MultiIntent: true,
		AllIntents:  []model.Category{model.CategoryBilling, model.CategoryNetwork},
	}

	out := Finalize("Your bill is ₹759.", c)

	assert.Contains(t, out, "Your bill is ₹759.")
	assert.Contains(t, out, "network issues")
	// The footer names only the intents that were not acted on.
	footer := out[len("Your bill is ₹759."):]
	assert.NotContains(t, footer, "billing")
}

func TestFinalize_FooterNamesAllOtherIntents(t *testing.T) {
	c := model.Classification{
		Primary:     model.CategoryNetwork,
		MultiIntent: true,
		AllIntents:  []model.Category{model.CategoryNetwork, model.CategoryPlan, model.CategoryKnowledge},
	}

	out := Finalize("Restart your router.", c)

	assert.Contains(t, out, "plan recommendations, general questions")
}

func TestFinalize_MultiIntentFlagWithSingleIntentIsUnchanged(t *testing.T) {
	c := model.Classification{
		Primary:     model.CategoryPlan,
		MultiIntent: true,
		AllIntents:  []model.Category{model.CategoryPlan},
	}

	out := Finalize("Upgrade to Power Unlimited.", c)

	assert.Equal(t, "Upgrade to Power Unlimited.", out)
}

func TestFinalize_EmptyHandlerTextYieldsSentinel(t *testing.T) {
	out := Finalize("   ", model.Classification{Primary: model.CategoryKnowledge})

	assert.Equal(t, NoResponseMessage, out)
}

func TestFinalize_EmptyTextStillGetsFooter(t *testing.T) {
	c := model.Classification{
		Primary:     model.CategoryBilling,
		MultiIntent: true,
		AllIntents:  []model.Category{model.CategoryBilling, model.CategoryPlan},
	}

	out := Finalize("", c)

	assert.Contains(t, out, NoResponseMessage)
	assert.Contains(t, out, "plan recommendations")
}
