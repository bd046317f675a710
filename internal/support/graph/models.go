package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	Client        *genai.Client
	ClassifierCfg *model.ClassifierModelConfig
	ResponderCfg  *model.ResponderModelConfig
}

// ChatModels holds the classifier and responder chat models.
type ChatModels struct {
	Classifier          *gemini.ChatModel
	Responder           *gemini.ChatModel
	ClassifierModelName string
	ResponderModelName  string
}

// NewChatModels creates the classifier and responder chat models on a shared
// Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.ClassifierCfg.Model,
		Temperature: &config.ClassifierCfg.Temperature,
		MaxTokens:   &config.ClassifierCfg.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	responderModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.ResponderCfg.Model,
		Temperature: &config.ResponderCfg.Temperature,
		MaxTokens:   &config.ResponderCfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating responder model")
		return nil, fmt.Errorf("error creating responder model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifierModel,
		Responder:           responderModel,
		ClassifierModelName: config.ClassifierCfg.Model,
		ResponderModelName:  config.ResponderCfg.Model,
	}, nil
}
