package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/redis/go-redis/v9"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
)

// Embedder maps texts to fixed-length vectors, one per input. The LLM
// client's embeddings call satisfies this directly.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// -------------------- normalization --------------------

type normalizedEmbedder struct {
	inner Embedder
}

// NewNormalizedEmbedder L2-normalizes every vector from the wrapped embedder
// so cosine and dot-product similarity agree downstream.
func NewNormalizedEmbedder(inner Embedder) Embedder {
	return &normalizedEmbedder{inner: inner}
}

func (e *normalizedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.inner.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	for _, v := range vecs {
		normalize(v)
	}
	return vecs, nil
}

func normalize(v []float32) {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}

// -------------------- redis cache --------------------

type cachedEmbedder struct {
	log       *logger.Logger
	inner     Embedder
	rdb       *redis.Client
	keyPrefix string
}

// NewCachedEmbedder puts a best-effort redis cache in front of an embedder,
// keyed by SHA-256 of the text under a per-model prefix. Redis failures are
// logged and the embedder is consulted as if the cache missed.
func NewCachedEmbedder(log *logger.Logger, inner Embedder, rdb *redis.Client, model string) Embedder {
	return &cachedEmbedder{
		log:       log.With("service", "CachedEmbedder"),
		inner:     inner,
		rdb:       rdb,
		keyPrefix: "emb:" + model + ":",
	}
}

func (e *cachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return e.keyPrefix + hex.EncodeToString(sum[:])
}

func (e *cachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	out := make([][]float32, len(texts))
	missIdx := make([]int, 0, len(texts))

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = e.key(t)
	}
	cached, err := e.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		e.log.Warn("embedding cache read failed", "error", err.Error())
		cached = make([]any, len(texts))
	}
	for i := range texts {
		raw, ok := cached[i].(string)
		if !ok {
			missIdx = append(missIdx, i)
			continue
		}
		var vec []float32
		if err := json.Unmarshal([]byte(raw), &vec); err != nil || len(vec) == 0 {
			missIdx = append(missIdx, i)
			continue
		}
		out[i] = vec
	}

	if len(missIdx) > 0 {
		missTexts := make([]string, len(missIdx))
		for j, i := range missIdx {
			missTexts[j] = texts[i]
		}
		vecs, err := e.inner.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, i := range missIdx {
			out[i] = vecs[j]
			if raw, mErr := json.Marshal(vecs[j]); mErr == nil {
				if sErr := e.rdb.Set(ctx, keys[i], raw, 0).Err(); sErr != nil {
					e.log.Warn("embedding cache write failed", "error", sErr.Error())
				}
			}
		}
	}
	return out, nil
}
