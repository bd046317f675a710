package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telsupport/server/internal/support/model"
)

func TestKnowledgeAgent_AnswersFromGeneralCollection(t *testing.T) {
	cm := &stubChatModel{replies: []string{"International roaming is enabled from the app."}}
	kn := &stubRetriever{passage: "Roaming packs start at ₹149 per day."}
	a := NewKnowledgeAgent(cm, "test-model", kn, passRelevance())

	out := a.Handle(context.Background(), "how do I enable roaming?", "")

	assert.Equal(t, "International roaming is enabled from the app.", out)
	assert.Equal(t, model.CategoryKnowledge, kn.lastCat)
	req := cm.lastRequest()
	require.Len(t, req, 1)
	assert.Contains(t, req[0].Content, "Roaming packs start at ₹149 per day.")
	assert.Contains(t, req[0].Content, "how do I enable roaming?")
}

func TestKnowledgeAgent_RewritesDollarAmounts(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "single amount", reply: "The pack costs $149 per month.", want: "The pack costs ₹149 per month."},
		{name: "multiple amounts", reply: "Plans range from $299 to $1199.", want: "Plans range from ₹299 to ₹1199."},
		{name: "no amounts untouched", reply: "Contact support for pricing.", want: "Contact support for pricing."},
		{name: "bare dollar sign untouched", reply: "Press the $ key.", want: "Press the $ key."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := &stubChatModel{replies: []string{tt.reply}}
			a := NewKnowledgeAgent(cm, "test-model", &stubRetriever{}, passRelevance())

			out := a.Handle(context.Background(), "plan pricing?", "")

			assert.Equal(t, tt.want, out)
		})
	}
}

func TestKnowledgeAgent_IrrelevantQueryRejected(t *testing.T) {
	cm := &stubChatModel{}
	a := NewKnowledgeAgent(cm, "test-model", &stubRetriever{}, rejectRelevance())

	out := a.Handle(context.Background(), "write me a poem", "")

	assert.Equal(t, RejectionMessage, out)
	assert.Equal(t, 0, cm.calls)
}
