package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/regindex/ai"
)

// Embedder implements ai.Embedder using the Gemini embedding API.
// Each task hint gets its own model handle so concurrent callers never
// share a mutable TaskType.
type Embedder struct {
	models map[ai.TaskType]*genai.EmbeddingModel
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

func newEmbedder(client *genai.Client, model string) *Embedder {
	models := make(map[ai.TaskType]*genai.EmbeddingModel, 3)
	for task, tt := range map[ai.TaskType]genai.TaskType{
		ai.TaskUnspecified:       genai.TaskTypeUnspecified,
		ai.TaskRetrievalDocument: genai.TaskTypeRetrievalDocument,
		ai.TaskRetrievalQuery:    genai.TaskTypeRetrievalQuery,
	} {
		em := client.EmbeddingModel(model)
		em.TaskType = tt
		models[task] = em
	}
	return &Embedder{
		models: models,
		logger: slog.Default().With("component", "gemini-embedder"),
	}
}

func (e *Embedder) model(task ai.TaskType) *genai.EmbeddingModel {
	if em, ok := e.models[task]; ok {
		return em
	}
	return e.models[ai.TaskUnspecified]
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string, task ai.TaskType) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text), "task", task)

	resp, err := e.model(task).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini: empty embedding in response")
	}
	return resp.Embedding.Values, nil
}

// EmbedTexts embeds all texts with a single BatchEmbedContents call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string, task ai.TaskType) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts), "task", task)
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	em := e.model(task)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb != nil {
			vectors[i] = emb.Values
		}
	}
	return vectors, nil
}
