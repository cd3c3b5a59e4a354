package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/config"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
)

// VectorStore is the persistence surface the RAG layer depends on. Documents
// and their embeddings are grouped into named collections; queries return the
// stored document texts nearest to the query embedding.
type VectorStore interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	Add(ctx context.Context, collection string, documents []string, embeddings [][]float32, metadatas []map[string]any) error
	Query(ctx context.Context, collection string, embedding []float32, topK int) ([]string, error)
	DeleteCollection(ctx context.Context, name string) error
}

type store struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client

	mu            sync.Mutex
	collectionIDs map[string]string
}

func NewStore(log *logger.Logger, cfg config.ChromaConfig) (VectorStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing CHROMA_URL")
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &store{
		log:           log.With("service", "ChromaStore"),
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		collectionIDs: map[string]string{},
	}, nil
}

func (s *store) doJSON(ctx context.Context, op, collection, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &OperationError{Op: op, Collection: collection, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, &buf)
	if err != nil {
		return &OperationError{Op: op, Collection: collection, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &OperationError{Op: op, Collection: collection, Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return &OperationError{Op: op, Collection: collection, Err: readErr}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{Op: op, Collection: collection, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &OperationError{Op: op, Collection: collection, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

type collectionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// collectionID resolves a collection name to the server-side id, creating the
// collection if it does not exist yet. Resolved ids are cached.
func (s *store) collectionID(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	if id, ok := s.collectionIDs[name]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	body := map[string]any{"name": name, "get_or_create": true}
	var info collectionInfo
	if err := s.doJSON(ctx, "create_collection", name, http.MethodPost, "/api/v1/collections", body, &info); err != nil {
		return "", err
	}
	if info.ID == "" {
		return "", &OperationError{Op: "create_collection", Collection: name, Err: fmt.Errorf("empty collection id in response")}
	}

	s.mu.Lock()
	s.collectionIDs[name] = info.ID
	s.mu.Unlock()
	return info.ID, nil
}

func (s *store) CollectionExists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	if _, ok := s.collectionIDs[name]; ok {
		s.mu.Unlock()
		return true, nil
	}
	s.mu.Unlock()

	var collections []collectionInfo
	if err := s.doJSON(ctx, "list_collections", name, http.MethodGet, "/api/v1/collections", nil, &collections); err != nil {
		return false, err
	}
	for _, c := range collections {
		if c.Name == name {
			s.mu.Lock()
			s.collectionIDs[name] = c.ID
			s.mu.Unlock()
			return true, nil
		}
	}
	return false, nil
}

// Add writes documents with their embeddings into the collection, creating it
// on first use. Ids are derived from the collection name and document position
// so re-adding the same batch overwrites rather than duplicates.
func (s *store) Add(ctx context.Context, collection string, documents []string, embeddings [][]float32, metadatas []map[string]any) error {
	if len(documents) != len(embeddings) {
		return &OperationError{Op: "add", Collection: collection,
			Err: fmt.Errorf("documents/embeddings length mismatch: %d vs %d", len(documents), len(embeddings))}
	}
	if metadatas != nil && len(metadatas) != len(documents) {
		return &OperationError{Op: "add", Collection: collection,
			Err: fmt.Errorf("documents/metadatas length mismatch: %d vs %d", len(documents), len(metadatas))}
	}
	if len(documents) == 0 {
		return nil
	}

	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return err
	}

	ids := make([]string, len(documents))
	for i := range documents {
		ids[i] = fmt.Sprintf("%s_%d", collection, i)
	}
	if metadatas == nil {
		metadatas = make([]map[string]any, len(documents))
		for i := range metadatas {
			metadatas[i] = map[string]any{}
		}
	}

	body := map[string]any{
		"ids":        ids,
		"embeddings": embeddings,
		"documents":  documents,
		"metadatas":  metadatas,
	}
	path := fmt.Sprintf("/api/v1/collections/%s/upsert", url.PathEscape(id))
	if err := s.doJSON(ctx, "add", collection, http.MethodPost, path, body, nil); err != nil {
		return err
	}

	s.log.Debug("documents added", "collection", collection, "count", len(documents))
	return nil
}

type queryResponse struct {
	Documents [][]string `json:"documents"`
}

func (s *store) Query(ctx context.Context, collection string, embedding []float32, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 3
	}

	id, err := s.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"query_embeddings": [][]float32{embedding},
		"n_results":        topK,
		"include":          []string{"documents"},
	}
	path := fmt.Sprintf("/api/v1/collections/%s/query", url.PathEscape(id))
	var resp queryResponse
	if err := s.doJSON(ctx, "query", collection, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Documents) == 0 {
		return []string{}, nil
	}
	return resp.Documents[0], nil
}

func (s *store) DeleteCollection(ctx context.Context, name string) error {
	path := "/api/v1/collections/" + url.PathEscape(name)
	err := s.doJSON(ctx, "delete_collection", name, http.MethodDelete, path, nil, nil)
	if err != nil {
		// Deleting a collection that never existed is not an error.
		var opErr *OperationError
		if !errors.As(err, &opErr) || opErr.StatusCode != http.StatusNotFound {
			return err
		}
	}

	s.mu.Lock()
	delete(s.collectionIDs, name)
	s.mu.Unlock()
	return nil
}
