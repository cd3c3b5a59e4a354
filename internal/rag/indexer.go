package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/chroma"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// VendorCollection builds the collection name used for one vendor document.
// Other components depend on this convention; change it and previously
// indexed documents become unreachable.
func VendorCollection(vendorID uuid.UUID, stage types.ReviewStage, docID uuid.UUID) string {
	return fmt.Sprintf("vendor_%s_%s_%s", vendorID, stage, docID)
}

// Indexer embeds chunks and writes them into the vector store.
type Indexer struct {
	log      *logger.Logger
	store    chroma.VectorStore
	embedder Embedder
}

func NewIndexer(log *logger.Logger, store chroma.VectorStore, embedder Embedder) *Indexer {
	return &Indexer{
		log:      log.With("service", "Indexer"),
		store:    store,
		embedder: embedder,
	}
}

func (ix *Indexer) UpsertChunks(ctx context.Context, collection string, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		metadatas[i] = c.Metadata
	}

	embeddings, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks for %s: %w", collection, err)
	}
	if err := ix.store.Add(ctx, collection, texts, embeddings, metadatas); err != nil {
		return err
	}

	ix.log.Info("chunks indexed", "collection", collection, "count", len(chunks))
	return nil
}

func (ix *Indexer) CollectionExists(ctx context.Context, name string) (bool, error) {
	return ix.store.CollectionExists(ctx, name)
}
