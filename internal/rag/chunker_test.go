package rag

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunkEmptyInput(t *testing.T) {
	c := NewChunker(512, 64)
	for _, in := range []string{"", "   ", "\n\n\t"} {
		if got := c.Chunk(in, map[string]any{"doc_id": "d1"}); len(got) != 0 {
			t.Fatalf("chunks for %q: want=0 got=%d", in, len(got))
		}
	}
}

func TestChunkShortTextSingleChunk(t *testing.T) {
	c := NewChunker(512, 64)
	meta := map[string]any{"doc_id": "d1", "stage": "LEGAL"}

	chunks := c.Chunk("hello world", meta)
	if len(chunks) != 1 {
		t.Fatalf("chunks: want=1 got=%d", len(chunks))
	}
	if chunks[0].Text != "hello world" {
		t.Fatalf("text: got=%q", chunks[0].Text)
	}
	if chunks[0].Metadata["doc_id"] != "d1" || chunks[0].Metadata["stage"] != "LEGAL" {
		t.Fatalf("metadata not carried: got=%v", chunks[0].Metadata)
	}
	if chunks[0].Metadata["chunk_index"] != 0 {
		t.Fatalf("chunk_index: want=0 got=%v", chunks[0].Metadata["chunk_index"])
	}
	if _, ok := meta["chunk_index"]; ok {
		t.Fatal("input metadata map must not be mutated")
	}
}

func TestChunkParagraphsRespectSizeAndIndex(t *testing.T) {
	c := NewChunker(512, 64)

	var paras []string
	for i := 0; i < 20; i++ {
		paras = append(paras, strings.Repeat(fmt.Sprintf("para%02d ", i), 28))
	}
	text := strings.Join(paras, "\n\n")

	chunks := c.Chunk(text, map[string]any{})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got=%d", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch.Text) > c.Size {
			t.Fatalf("chunk %d exceeds size: len=%d", i, len(ch.Text))
		}
		if ch.Metadata["chunk_index"] != i {
			t.Fatalf("chunk_index: want=%d got=%v", i, ch.Metadata["chunk_index"])
		}
	}
	// Nothing may be dropped: every paragraph marker appears somewhere.
	joined := ""
	for _, ch := range chunks {
		joined += ch.Text + " "
	}
	for i := 0; i < 20; i++ {
		if !strings.Contains(joined, fmt.Sprintf("para%02d", i)) {
			t.Fatalf("paragraph %d missing from chunks", i)
		}
	}
}

func TestChunkWordsCarryOverlap(t *testing.T) {
	c := NewChunker(512, 64)

	words := make([]string, 300)
	for i := range words {
		words[i] = fmt.Sprintf("word%04d", i)
	}
	chunks := c.Chunk(strings.Join(words, " "), nil)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got=%d", len(chunks))
	}
	for i := 0; i < len(chunks)-1; i++ {
		fields := strings.Fields(chunks[i].Text)
		last := fields[len(fields)-1]
		if !strings.Contains(chunks[i+1].Text, last) {
			t.Fatalf("chunk %d tail %q not carried into chunk %d", i, last, i+1)
		}
	}
}

func TestChunkFixedWidthFallback(t *testing.T) {
	c := NewChunker(512, 64)

	chunks := c.Chunk(strings.Repeat("a", 1200), nil)
	if len(chunks) != 3 {
		t.Fatalf("chunks: want=3 got=%d", len(chunks))
	}
	if len(chunks[0].Text) != 512 {
		t.Fatalf("first chunk len: want=512 got=%d", len(chunks[0].Text))
	}
	// Consecutive slices share the configured overlap.
	if len(chunks[1].Text) != 512 {
		t.Fatalf("second chunk len: want=512 got=%d", len(chunks[1].Text))
	}
}
