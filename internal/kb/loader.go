package kb

import (
	"context"
	"fmt"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
)

// Loader seeds the two fixed knowledge-base collections on startup. The
// exists check and the upsert are not mutually excluded, so concurrent
// seeding from multiple processes can duplicate work; ids are deterministic
// and upsert replaces, so the result is still correct.
type Loader struct {
	log     *logger.Logger
	chunker *rag.Chunker
	indexer *rag.Indexer
}

func NewLoader(log *logger.Logger, chunker *rag.Chunker, indexer *rag.Indexer) *Loader {
	return &Loader{
		log:     log.With("service", "KnowledgeBaseLoader"),
		chunker: chunker,
		indexer: indexer,
	}
}

// SeedIfEmpty chunks, embeds, and upserts each corpus whose collection does
// not exist yet. A second call is a no-op.
func (l *Loader) SeedIfEmpty(ctx context.Context) error {
	corpora := []struct {
		collection string
		entries    []Entry
	}{
		{CollectionLegal, LegalEntries},
		{CollectionSecurity, SecurityEntries},
	}

	for _, corpus := range corpora {
		exists, err := l.indexer.CollectionExists(ctx, corpus.collection)
		if err != nil {
			return fmt.Errorf("check collection %s: %w", corpus.collection, err)
		}
		if exists {
			l.log.Debug("knowledge base already seeded", "collection", corpus.collection)
			continue
		}

		var chunks []rag.Chunk
		for _, entry := range corpus.entries {
			meta := make(map[string]any, len(entry.Metadata)+1)
			for k, v := range entry.Metadata {
				meta[k] = v
			}
			meta["entry_id"] = entry.ID
			chunks = append(chunks, l.chunker.Chunk(entry.Text, meta)...)
		}
		if err := l.indexer.UpsertChunks(ctx, corpus.collection, chunks); err != nil {
			return fmt.Errorf("seed collection %s: %w", corpus.collection, err)
		}
		l.log.Info("knowledge base seeded", "collection", corpus.collection, "entries", len(corpus.entries), "chunks", len(chunks))
	}
	return nil
}
