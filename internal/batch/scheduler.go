package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/strata/internal/corpus"
)

// DefaultChunkSize bounds how many conversations a pass sees at once.
const DefaultChunkSize = 50

// Chunks splits conversations into contiguous runs of at most size each,
// preserving corpus order. The final chunk carries the remainder. A
// conversation is never split across chunks.
func Chunks(convs []corpus.Conversation, size int) [][]corpus.Conversation {
	if size <= 0 {
		size = DefaultChunkSize
	}
	var chunks [][]corpus.Conversation
	for start := 0; start < len(convs); {
		end := start + size
		if end > len(convs) {
			end = len(convs)
		}
		chunks = append(chunks, convs[start:end])
		start = end
	}
	return chunks
}

// Pass is one analysis pass driven over the corpus chunk by chunk. Fn
// accumulates into state the pass closes over. MaxConversations caps how
// much of the corpus the pass sees: 0 means everything, n > 0 stops after
// the first n conversations in corpus order.
type Pass struct {
	Name             string
	MaxConversations int
	Fn               func(ctx context.Context, convs []corpus.Conversation) error
}

// Scheduler drives analysis passes over fixed-size chunks. Chunking bounds
// the working set; processing stays sequential.
type Scheduler struct {
	chunkSize int
	logger    *slog.Logger
}

func NewScheduler(chunkSize int, logger *slog.Logger) *Scheduler {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{chunkSize: chunkSize, logger: logger}
}

// Run feeds every chunk to every pass in order. A pass whose quota is spent
// is skipped for the rest of the run. Cancellation is honored between
// chunks; a pass error aborts the whole run.
func (s *Scheduler) Run(ctx context.Context, convs []corpus.Conversation, passes []Pass) error {
	chunks := Chunks(convs, s.chunkSize)
	fed := make([]int, len(passes))

	for ci, chunk := range chunks {
		select {
		case <-ctx.Done():
			s.logger.Info("run interrupted", "chunks_done", ci, "chunks_total", len(chunks))
			return ctx.Err()
		default:
		}

		for pi := range passes {
			p := &passes[pi]
			part := chunk
			if p.MaxConversations > 0 {
				remaining := p.MaxConversations - fed[pi]
				if remaining <= 0 {
					continue
				}
				if len(part) > remaining {
					part = part[:remaining]
				}
			}
			if err := p.Fn(ctx, part); err != nil {
				return fmt.Errorf("pass %s on chunk %d: %w", p.Name, ci+1, err)
			}
			fed[pi] += len(part)
		}

		s.logger.Debug("chunk processed",
			"chunk", ci+1,
			"chunks", len(chunks),
			"conversations", len(chunk))
	}
	return nil
}
