// Package pipeline orchestrates image tagging: load, score, rank, translate, persist.
package pipeline

import (
	"context"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/datastore"
	"github.com/phototag/phototag-go/internal/errors"
	"github.com/phototag/phototag-go/internal/imaging"
	"github.com/phototag/phototag-go/internal/logging"
	"github.com/phototag/phototag-go/internal/ranker"
	"github.com/phototag/phototag-go/internal/scorer"
	"github.com/phototag/phototag-go/internal/vocabulary"
)

// Package-level logger for pipeline operations
var (
	pipelineLogger *slog.Logger
	loggerOnce     sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		pipelineLogger = logging.ForService("pipeline")
		if pipelineLogger == nil {
			pipelineLogger = slog.Default().With("service", "pipeline")
		}
	})
	return pipelineLogger
}

// Pipeline drives tagging for single images and whole directories. All
// collaborators are injected at construction and the instance is immutable
// afterwards, so one pipeline is safe to share across concurrent jobs.
type Pipeline struct {
	settings *conf.Settings
	scorer   scorer.Interface
	store    datastore.Interface
	vocab    *vocabulary.Vocabulary
}

// New constructs a tagging pipeline.
func New(settings *conf.Settings, sc scorer.Interface, store datastore.Interface, vocab *vocabulary.Vocabulary) (*Pipeline, error) {
	if settings == nil || sc == nil || store == nil || vocab == nil {
		return nil, errors.Newf("pipeline requires settings, scorer, datastore and vocabulary").
			Component("pipeline").
			Category(errors.CategoryValidation).
			Build()
	}
	return &Pipeline{
		settings: settings,
		scorer:   sc,
		store:    store,
		vocab:    vocab,
	}, nil
}

// TagOne tags a single image: decode, score against the candidate labels,
// rank the top K, translate to presentation labels and upsert the result
// keyed by the absolute image path. A nil candidate set means the full
// vocabulary.
func (p *Pipeline) TagOne(ctx context.Context, path string, candidates []string, topK int) (datastore.TagSet, error) {
	if topK < 1 {
		return nil, errors.Newf("top_k must be at least 1, got %d", topK).
			Component("pipeline").
			Category(errors.CategoryValidation).
			Build()
	}
	if candidates == nil {
		candidates = p.vocab.Labels()
	}
	if len(candidates) == 0 {
		return nil, errors.Newf("no candidate labels").
			Component("pipeline").
			Category(errors.CategoryValidation).
			Build()
	}
	if topK > len(candidates) {
		topK = len(candidates)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.New(err).
			Component("pipeline").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	img, err := imaging.Load(absPath)
	if err != nil {
		return nil, err
	}

	// Best-effort capture time; absence is not an error.
	var capturedAt *time.Time
	if captured, ok := imaging.CaptureTime(absPath); ok {
		capturedAt = &captured
	}

	start := time.Now()
	scores, err := p.scoreWithRetry(ctx, img, candidates)
	if err != nil {
		return nil, err
	}

	ranked, err := ranker.Rank(candidates, scores, topK)
	if err != nil {
		return nil, err
	}

	tags := make(datastore.TagSet, len(ranked))
	for i, r := range ranked {
		tags[i] = datastore.Tag{
			Label:      p.vocab.Translate(r.Label),
			Confidence: r.Confidence,
		}
	}

	if err := p.store.UpsertTaggedImage(absPath, tags, capturedAt); err != nil {
		// A lost write is worse than a lost tag; never swallow this.
		return nil, err
	}

	getLogger().Debug("Image tagged",
		"path", absPath,
		"tags", tags.Labels(),
		"duration", time.Since(start))
	return tags, nil
}

// scoreWithRetry invokes the scorer with a bounded number of retries.
// Transient accelerator errors rarely self-heal, so the retry budget stays
// small (default one extra attempt). Only scorer failures are retried.
func (p *Pipeline) scoreWithRetry(ctx context.Context, img image.Image, candidates []string) (map[string]float64, error) {
	attempts := p.settings.Scorer.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		// Cancellation is not a scorer failure; keep the outcome attributable.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scores, err := p.scorer.Score(ctx, img, candidates)
		if err == nil {
			return scores, nil
		}
		lastErr = err

		if !errors.HasCategory(err, errors.CategoryScorer) {
			return nil, err
		}
		if attempt < attempts {
			getLogger().Warn("Scorer call failed, retrying",
				"attempt", attempt,
				"error", err)
		}
	}
	return nil, lastErr
}
