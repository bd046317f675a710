// Package knowledge maintains per-domain document collections in an embedded
// vector store and serves short advisory passages to the support handlers.
//
// Retrieval is best-effort by contract: handlers treat the returned text as
// optional grounding, so every internal failure is logged and surfaces as an
// empty string, never as an error.
package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// Collection names, one per support domain.
const (
	collectionBilling = "billing_docs"
	collectionNetwork = "network_docs"
	collectionPlan    = "service_docs"
	collectionGeneral = "telecom_docs"
)

func collectionFor(c model.Category) string {
	switch c {
	case model.CategoryBilling:
		return collectionBilling
	case model.CategoryNetwork:
		return collectionNetwork
	case model.CategoryPlan:
		return collectionPlan
	default:
		return collectionGeneral
	}
}

// Index is the embedded vector store holding the document collections.
// It is constructed once at the composition root and shared by all handlers.
type Index struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
	topK  int
}

// New opens (or creates) the vector store. With a persist path the store is
// rebuilt from disk; otherwise it lives in memory for the process lifetime.
func New(cfg model.KnowledgeConfig, embed chromem.EmbeddingFunc) (*Index, error) {
	if embed == nil {
		return nil, fmt.Errorf("knowledge: embedding function is required")
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 2
	}

	if cfg.PersistPath != "" {
		db, err := chromem.NewPersistentDB(cfg.PersistPath, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("knowledge: open persistent store: %w", err)
		}
		return &Index{db: db, embed: embed, topK: topK}, nil
	}
	return &Index{db: chromem.NewDB(), embed: embed, topK: topK}, nil
}

// Retrieve returns a short advisory passage for the query from the domain's
// collection, or "" when nothing useful can be fetched. It never returns an
// error; failures are logged and swallowed per the best-effort contract.
func (i *Index) Retrieve(ctx context.Context, category model.Category, query string) string {
	col := i.db.GetCollection(collectionFor(category), i.embed)
	if col == nil {
		logx.Debug().Str("category", category.String()).Msg("knowledge collection missing; returning empty context")
		return ""
	}

	n := i.topK
	if count := col.Count(); count < n {
		n = count
	}
	if n == 0 {
		return ""
	}

	results, err := col.Query(ctx, query, n, nil, nil)
	if err != nil {
		logx.Warn().Err(err).
			Str("category", category.String()).
			Msg("knowledge retrieval failed; returning empty context")
		return ""
	}

	passages := make([]string, 0, len(results))
	for _, r := range results {
		if text := strings.TrimSpace(r.Content); text != "" {
			passages = append(passages, text)
		}
	}
	return strings.Join(passages, "\n\n")
}
