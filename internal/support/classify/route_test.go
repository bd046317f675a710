package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telsupport/server/internal/support/model"
)

func TestRoute_EveryCategoryHasAHandler(t *testing.T) {
	want := map[model.Category]string{
		model.CategoryBilling:   HandlerBilling,
		model.CategoryNetwork:   HandlerNetwork,
		model.CategoryPlan:      HandlerPlan,
		model.CategoryKnowledge: HandlerKnowledge,
	}

	for _, c := range model.Categories {
		assert.Equal(t, want[c], Route(c), "category %s", c)
	}
}

func TestRoute_UnknownCategoryGoesToKnowledge(t *testing.T) {
	assert.Equal(t, HandlerKnowledge, Route(model.Category("weather")))
	assert.Equal(t, HandlerKnowledge, Route(model.Category("")))
}
