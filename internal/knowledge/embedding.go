package knowledge

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

// NewGenAIEmbedding adapts the Gemini embeddings API to chromem's
// EmbeddingFunc so the same client credentials serve chat and retrieval.
func NewGenAIEmbedding(client *genai.Client, embeddingModel string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		resp, err := client.Models.EmbedContent(ctx, embeddingModel, genai.Text(text), nil)
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return nil, fmt.Errorf("embed content: empty embedding for model %s", embeddingModel)
		}
		return resp.Embeddings[0].Values, nil
	}
}
