package policysearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/peopleops/hrdesk/internal/vector"
	"github.com/peopleops/hrdesk/provider"
	"github.com/peopleops/hrdesk/tools"
)

// Embedder turns query text into a vector for similarity search.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Tool searches the HR policy knowledge base via the vector index.
type Tool struct {
	embedder Embedder
	index    vector.Index
	topK     int
}

func New(embedder Embedder, index vector.Index, topK int) *Tool {
	if topK <= 0 {
		topK = 3
	}
	return &Tool{embedder: embedder, index: index, topK: topK}
}

var _ tools.Tool = (*Tool)(nil)

func (t *Tool) Definition() provider.ToolDef {
	return provider.ToolDef{
		Name:        "search_hr_policies",
		Description: "Search the HR policy knowledge base for information about company policies, leave policies, benefits, procedures, and guidelines. Use this for any policy-related question.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *Tool) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	query := tools.StringArg(args, "query")
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	vecs, err := t.embedder.CreateEmbedding(ctx, []string{query})
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) == 0 {
		return "", fmt.Errorf("embedding query: empty result")
	}

	matches, err := t.index.Query(ctx, vecs[0], t.topK)
	if err != nil {
		return "", fmt.Errorf("searching policies: %w", err)
	}

	var texts []string
	for _, m := range matches {
		if text, ok := m.Metadata["text"].(string); ok && text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return "No context found.", nil
	}
	return strings.Join(texts, "\n\n"), nil
}
