package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peopleops/hrdesk/config"
	"github.com/peopleops/hrdesk/internal/telemetry"
	"github.com/peopleops/hrdesk/internal/vector"
	"github.com/peopleops/hrdesk/models"
)

// Embedder turns chunk texts into vectors.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// Ingestor loads a directory of text documents into the vector index.
// Any embedding or upload failure aborts the run; there is no
// partial-failure recovery.
type Ingestor struct {
	embedder  Embedder
	index     vector.Index
	splitter  Splitter
	batchSize int
	logger    *log.Logger
}

func New(embedder Embedder, index vector.Index, cfg config.IngestConfig) *Ingestor {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Ingestor{
		embedder:  embedder,
		index:     index,
		splitter:  Splitter{ChunkSize: chunkSize, Overlap: overlap},
		batchSize: batch,
		logger:    log.New(log.Writer(), "[INGEST] ", log.LstdFlags),
	}
}

// IngestDir splits, embeds, and upserts every .txt file in dir. It returns
// the number of chunks uploaded.
func (i *Ingestor) IngestDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading document directory: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		n, err := i.ingestFile(ctx, path)
		if err != nil {
			return total, fmt.Errorf("ingesting %s: %w", entry.Name(), err)
		}
		i.logger.Printf("added %d chunks from %s", n, entry.Name())
		total += n
	}
	if total == 0 {
		return 0, fmt.Errorf("no .txt documents found in %s", dir)
	}
	return total, nil
}

func (i *Ingestor) ingestFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	chunks := i.chunkDocument(string(data), filepath.Base(path))
	if len(chunks) == 0 {
		return 0, nil
	}
	i.logger.Printf("split %s into %d chunks", filepath.Base(path), len(chunks))

	for start := 0; start < len(chunks); start += i.batchSize {
		end := start + i.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := i.upsertBatch(ctx, chunks[start:end]); err != nil {
			return 0, err
		}
	}
	telemetry.ChunksIngested.Add(float64(len(chunks)))
	return len(chunks), nil
}

func (i *Ingestor) chunkDocument(text, source string) []models.DocumentChunk {
	hash := sha1Hex(text)
	pieces := i.splitter.Split(text)
	chunks := make([]models.DocumentChunk, 0, len(pieces))
	for idx, p := range pieces {
		chunks = append(chunks, models.DocumentChunk{
			ID:         fmt.Sprintf("%s#%03d", hash, idx),
			Text:       p.Text,
			Source:     source,
			StartIndex: p.StartIndex,
			ChunkIndex: idx,
		})
	}
	return chunks
}

func (i *Ingestor) upsertBatch(ctx context.Context, chunks []models.DocumentChunk) error {
	texts := make([]string, len(chunks))
	for j, c := range chunks {
		texts[j] = c.Text
	}
	vecs, err := i.embedder.CreateEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(vecs), len(chunks))
	}

	vectors := make([]vector.Vector, len(chunks))
	for j, c := range chunks {
		vectors[j] = vector.Vector{
			ID:     c.ID,
			Values: vecs[j],
			Metadata: map[string]interface{}{
				"text":        c.Text,
				"source":      c.Source,
				"start_index": c.StartIndex,
				"chunk_index": c.ChunkIndex,
			},
		}
	}
	if err := i.index.Upsert(ctx, vectors); err != nil {
		return fmt.Errorf("upserting chunks: %w", err)
	}
	return nil
}

func sha1Hex(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}
