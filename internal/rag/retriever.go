package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/chroma"
)

const contextSeparator = "\n---\n"

// Retriever is a formatting adapter over the vector store: top-n query
// results joined into a single context string for prompt injection. No
// caching, no retry.
type Retriever struct {
	store    chroma.VectorStore
	embedder Embedder
}

func NewRetriever(store chroma.VectorStore, embedder Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

func (r *Retriever) Retrieve(ctx context.Context, query, collection string, n int) (string, error) {
	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	docs, err := r.store.Query(ctx, collection, vecs[0], n)
	if err != nil {
		return "", err
	}
	return strings.Join(docs, contextSeparator), nil
}
