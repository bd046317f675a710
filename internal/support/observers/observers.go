// Package observers wires Eino callbacks into structured logging.
package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	"github.com/telsupport/server/pkg/logx"
)

// NewCallbacks aggregates the model and prompt observers into one handler for
// graph invocations.
func NewCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}

func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *einomodel.CallbackInput) context.Context {
			messages := 0
			if input != nil {
				messages = len(input.Messages)
			}
			logx.Debug().
				Str("component", info.Type).
				Str("name", info.Name).
				Int("messages", messages).
				Msg("model call start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *einomodel.CallbackOutput) context.Context {
			preview := ""
			if output != nil && output.Message != nil {
				preview = snippet(output.Message.Content, 120)
			}
			logx.Debug().
				Str("component", info.Type).
				Str("name", info.Name).
				Str("preview", preview).
				Msg("model call end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().
				Str("component", info.Type).
				Str("name", info.Name).
				Err(err).
				Msg("model call failed")
			return ctx
		},
	}
}

func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			rendered := 0
			if output != nil {
				rendered = len(output.Result)
			}
			logx.Debug().
				Str("component", info.Type).
				Int("messages", rendered).
				Msg("prompt rendered")
			return ctx
		},
	}
}

func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
