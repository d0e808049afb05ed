package pipeline

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/vad"
)

// chunkQueue transcribes long-form chunks as the silence monitor emits them
// and merges the results in boundary order at the end of the session.
type chunkQueue struct {
	transcribe func(ctx context.Context, samples []float32) (string, error)
	log        *logger.Logger
	sem        chan struct{}

	mu       sync.Mutex
	results  []chunkResult
	next     int
	consumed int

	wg sync.WaitGroup
}

type chunkResult struct {
	index int
	text  string
	err   error
}

func newChunkQueue(workers int, transcribe func(ctx context.Context, samples []float32) (string, error), log *logger.Logger) *chunkQueue {
	if workers < 1 {
		workers = 1
	}
	return &chunkQueue{
		transcribe: transcribe,
		log:        log,
		sem:        make(chan struct{}, workers),
	}
}

// Enqueue transcribes one chunk in the background. Order is preserved by
// index, not by completion time.
func (q *chunkQueue) Enqueue(ctx context.Context, samples []float32) {
	q.mu.Lock()
	index := q.next
	q.next++
	q.consumed += len(samples)
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.sem <- struct{}{}
		defer func() { <-q.sem }()

		text, err := q.transcribe(ctx, samples)
		if err != nil {
			q.log.Warn("Chunk transcription failed", map[string]interface{}{
				"chunk": index,
				"error": err.Error(),
			})
		}
		q.mu.Lock()
		q.results = append(q.results, chunkResult{index: index, text: text, err: err})
		q.mu.Unlock()
	}()
}

// Consumed returns how many samples have been handed to chunks so far. The
// controller uses it to find the untranscribed tail of the session buffer.
func (q *chunkQueue) Consumed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.consumed
}

// Drain waits for all in-flight chunks and returns the merged transcript.
// Chunks that failed with empty audio are dropped silently; any other
// failure surfaces only when no chunk produced text.
func (q *chunkQueue) Drain(ctx context.Context) (string, error) {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return "", apperrors.Cancelled("chunk transcription").WithCause(ctx.Err())
	}

	q.mu.Lock()
	results := append([]chunkResult(nil), q.results...)
	q.mu.Unlock()
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	parts := make([]string, 0, len(results))
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil && !apperrors.HasCode(r.err, apperrors.ErrCodeEmptyAudio) {
				firstErr = r.err
			}
			continue
		}
		if r.text != "" {
			parts = append(parts, r.text)
		}
	}

	merged := vad.CombineTranscripts(parts)
	if merged == "" {
		if firstErr != nil {
			return "", firstErr
		}
		return "", apperrors.EmptyAudio().WithDetail("reason", "no chunk produced text")
	}
	return merged, nil
}
