package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/ingestion/extractor"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/rag"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/repos"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/types"
)

// DocumentService owns the upload pipeline: extract text, persist the row,
// chunk, embed, and index into the vendor's per-document collection.
type DocumentService struct {
	log       *logger.Logger
	db        *gorm.DB
	vendors   repos.VendorRepo
	documents repos.DocumentRepo
	extractor *extractor.Extractor
	chunker   *rag.Chunker
	indexer   *rag.Indexer
}

func NewDocumentService(
	log *logger.Logger,
	db *gorm.DB,
	vendors repos.VendorRepo,
	documents repos.DocumentRepo,
	ext *extractor.Extractor,
	chunker *rag.Chunker,
	indexer *rag.Indexer,
) *DocumentService {
	return &DocumentService{
		log:       log.With("service", "DocumentService"),
		db:        db,
		vendors:   vendors,
		documents: documents,
		extractor: ext,
		chunker:   chunker,
		indexer:   indexer,
	}
}

// Upload stores a vendor document and indexes its chunks. The document row
// survives an indexing failure with an empty collection id, so the text is
// never lost and indexing can be repeated by re-uploading.
func (s *DocumentService) Upload(ctx context.Context, vendorID uuid.UUID, stage types.ReviewStage, docType, filename string, data []byte) (*types.Document, error) {
	if _, err := s.vendors.GetByID(ctx, nil, vendorID); err != nil {
		return nil, err
	}

	rawText, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Create(ctx, nil, &types.Document{
		VendorID:   vendorID,
		Stage:      stage,
		DocType:    docType,
		Filename:   filename,
		RawText:    rawText,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Chunk(rawText, map[string]any{
		"vendor_id": vendorID.String(),
		"stage":     string(stage),
		"doc_id":    doc.ID.String(),
	})
	collection := rag.VendorCollection(vendorID, stage, doc.ID)
	if err := s.indexer.UpsertChunks(ctx, collection, chunks); err != nil {
		return nil, err
	}

	if err := s.documents.SetCollectionID(ctx, nil, doc.ID, collection); err != nil {
		return nil, err
	}
	doc.ChromaCollectionID = collection
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	return s.documents.GetByID(ctx, nil, id)
}

func (s *DocumentService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*types.Document, error) {
	if _, err := s.vendors.GetByID(ctx, nil, vendorID); err != nil {
		return nil, err
	}
	return s.documents.ListByVendor(ctx, nil, vendorID)
}
