package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// Per-domain source documents, matching the support team's corpus layout.
// The general collection additionally absorbs every .txt file in the corpus.
var domainDocuments = map[model.Category][]string{
	model.CategoryBilling: {"Billing FAQs.txt"},
	model.CategoryNetwork: {"Network_Troubleshooting_Guide.txt", "Technical Support Guide.txt"},
	model.CategoryPlan:    {"Telecom Service Plans Guide.txt"},
}

const maxChunkChars = 2000

// IndexDocuments loads the document corpus into the per-domain collections.
// It runs once at startup; collections that already hold documents (e.g.
// restored from a persistent store) are left untouched.
func (i *Index) IndexDocuments(ctx context.Context, documentsPath string) error {
	for _, category := range model.Categories {
		name := collectionFor(category)
		col, err := i.db.GetOrCreateCollection(name, nil, i.embed)
		if err != nil {
			return fmt.Errorf("knowledge: create collection %s: %w", name, err)
		}
		if col.Count() > 0 {
			logx.Debug().Str("collection", name).Int("documents", col.Count()).Msg("collection already indexed")
			continue
		}

		files, err := i.sourceFiles(category, documentsPath)
		if err != nil {
			return err
		}

		docs, err := chunkFiles(files)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			logx.Warn().Str("collection", name).Msg("no documents found for collection")
			continue
		}

		if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return fmt.Errorf("knowledge: index %s: %w", name, err)
		}
		logx.Info().Str("collection", name).Int("chunks", len(docs)).Msg("indexed knowledge collection")
	}
	return nil
}

func (i *Index) sourceFiles(category model.Category, documentsPath string) ([]string, error) {
	if names, ok := domainDocuments[category]; ok {
		var files []string
		for _, name := range names {
			path := filepath.Join(documentsPath, name)
			if _, err := os.Stat(path); err == nil {
				files = append(files, path)
			}
		}
		return files, nil
	}

	// General collection: the whole corpus.
	matches, err := filepath.Glob(filepath.Join(documentsPath, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("knowledge: scan corpus: %w", err)
	}
	return matches, nil
}

// chunkFiles splits each file into paragraph-aligned chunks bounded by
// maxChunkChars so embedding inputs stay within model limits.
func chunkFiles(files []string) ([]chromem.Document, error) {
	var docs []chromem.Document
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("knowledge: read %s: %w", path, err)
		}
		base := filepath.Base(path)
		for n, chunk := range chunkText(string(raw)) {
			docs = append(docs, chromem.Document{
				ID:      fmt.Sprintf("%s#%d", base, n),
				Content: chunk,
				Metadata: map[string]string{
					"source": base,
				},
			})
		}
	}
	return docs, nil
}

func chunkText(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > maxChunkChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()
	return chunks
}
