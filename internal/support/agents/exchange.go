package agents

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/pkg/logx"
)

// TerminateToken is the sentinel an exchange participant emits to end the
// conversation early.
const TerminateToken = "TERMINATE"

const defaultMaxRounds = 6

// Exchange runs the bounded two-agent diagnostics/solution conversation of
// the network handler. It is an explicit finite loop: diagnostics and
// solution alternate turns until one of them emits the sentinel or the round
// budget is exhausted, whichever comes first.
type Exchange struct {
	diagnostics einomodel.BaseChatModel
	solution    einomodel.BaseChatModel
	diagSystem  string
	solSystem   string
	modelName   string
	maxRounds   int
}

func NewExchange(diagnostics, solution einomodel.BaseChatModel, diagSystem, solSystem, modelName string, maxRounds int) *Exchange {
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	return &Exchange{
		diagnostics: diagnostics,
		solution:    solution,
		diagSystem:  diagSystem,
		solSystem:   solSystem,
		modelName:   modelName,
		maxRounds:   maxRounds,
	}
}

// Run seeds the exchange and returns the last agent message with the sentinel
// stripped. An empty result means no agent produced any message.
func (e *Exchange) Run(ctx context.Context, seed string) (string, error) {
	transcript := []*schema.Message{schema.UserMessage(seed)}
	lastAgentMessage := ""

	for round := 0; round < e.maxRounds; round++ {
		speaker, system := e.diagnostics, e.diagSystem
		if round%2 == 1 {
			speaker, system = e.solution, e.solSystem
		}

		msgs := make([]*schema.Message, 0, len(transcript)+1)
		msgs = append(msgs, schema.SystemMessage(system))
		msgs = append(msgs, transcript...)

		content, err := generate(ctx, speaker, e.modelName, msgs)
		if err != nil {
			return "", fmt.Errorf("exchange round %d: %w", round+1, err)
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		transcript = append(transcript, schema.AssistantMessage(content, nil))
		lastAgentMessage = content

		if strings.Contains(content, TerminateToken) {
			logx.Debug().Int("rounds", round+1).Msg("exchange terminated on sentinel")
			break
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(lastAgentMessage, TerminateToken, "")), nil
}
