package rag

import "strings"

// Chunk is the unit of embedding and storage: a bounded span of source text
// plus its metadata.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// Chunker splits raw text into overlapping windows using a recursive
// separator strategy: paragraphs first, then lines, sentences, words, and as
// a last resort fixed-width slices. Defaults are 512-character chunks with a
// 64-character overlap.
type Chunker struct {
	Size    int
	Overlap int
}

var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 512
	}
	if overlap < 0 || overlap >= size {
		overlap = 64
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Chunk splits text and attaches the input metadata plus a zero-based
// chunk_index to every piece. Empty input yields an empty slice.
func (c *Chunker) Chunk(text string, metadata map[string]any) []Chunk {
	texts := c.splitText(text, chunkSeparators)

	chunks := make([]Chunk, 0, len(texts))
	for i, t := range texts {
		md := make(map[string]any, len(metadata)+1)
		for k, v := range metadata {
			md[k] = v
		}
		md["chunk_index"] = i
		chunks = append(chunks, Chunk{Text: t, Metadata: md})
	}
	return chunks
}

func (c *Chunker) splitText(text string, separators []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Pick the first separator that occurs in the text; "" means fall back
	// to fixed-width slicing.
	sep := separators[len(separators)-1]
	var remaining []string
	for i, s := range separators {
		if s == "" {
			sep = s
			break
		}
		if strings.Contains(text, s) {
			sep = s
			remaining = separators[i+1:]
			break
		}
	}

	var splits []string
	if sep == "" {
		return c.sliceFixed(text)
	}
	for _, s := range strings.Split(text, sep) {
		if s != "" {
			splits = append(splits, s)
		}
	}

	var final []string
	var fitting []string
	for _, s := range splits {
		if len(s) < c.Size {
			fitting = append(fitting, s)
			continue
		}
		if len(fitting) > 0 {
			final = append(final, c.mergeSplits(fitting, sep)...)
			fitting = nil
		}
		// Oversized piece: recurse with the finer separators.
		final = append(final, c.splitText(s, remaining)...)
	}
	if len(fitting) > 0 {
		final = append(final, c.mergeSplits(fitting, sep)...)
	}
	return final
}

// mergeSplits packs small pieces back together up to the chunk size, carrying
// a tail of roughly Overlap characters into the next chunk.
func (c *Chunker) mergeSplits(splits []string, sep string) []string {
	var docs []string
	var current []string
	total := 0

	joinedLen := func(extra int) int {
		n := total + extra
		if len(current) > 0 {
			n += len(sep) * len(current)
		}
		return n
	}

	for _, s := range splits {
		if len(current) > 0 && joinedLen(len(s)) > c.Size {
			if doc := strings.TrimSpace(strings.Join(current, sep)); doc != "" {
				docs = append(docs, doc)
			}
			// Shed leading pieces until the retained tail fits the overlap
			// and leaves room for the incoming piece.
			for len(current) > 0 && (total > c.Overlap || joinedLen(len(s)) > c.Size) {
				total -= len(current[0])
				current = current[1:]
			}
		}
		current = append(current, s)
		total += len(s)
	}
	if doc := strings.TrimSpace(strings.Join(current, sep)); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

func (c *Chunker) sliceFixed(text string) []string {
	step := c.Size - c.Overlap
	var out []string
	for start := 0; start < len(text); start += step {
		end := start + c.Size
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}
