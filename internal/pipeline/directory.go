// directory.go: whole-directory tagging under a bounded worker pool.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/phototag/phototag-go/internal/errors"
)

// TagDirectory tags every eligible image under root. Enumeration is eager so
// the returned job immediately reports how many files were discovered;
// tagging then proceeds in the background, each file an independent unit of
// work under the configured concurrency limit. One corrupt file never aborts
// the rest of the batch.
func (p *Pipeline) TagDirectory(ctx context.Context, root string, candidates []string, topK int, extensions []string) (*Job, error) {
	if extensions == nil {
		extensions = p.settings.Tagger.Extensions
	}

	files, err := EnumerateImages(root, extensions, p.settings.Input.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Newf("no eligible images found under %s", root).
			Component("pipeline").
			Category(errors.CategoryNotFound).
			Context("root", root).
			Build()
	}

	job := newJob(root, len(files))
	getLogger().Info("Directory job started",
		"job_id", job.ID,
		"root", root,
		"files", job.Total,
		"workers", p.settings.Tagger.MaxWorkers)

	go p.runDirectoryJob(ctx, job, files, candidates, topK)
	return job, nil
}

// runDirectoryJob drives the worker pool for one directory job. Cancellation
// is a graceful drain: no new files are scheduled, in-flight ones complete,
// and the files never started are recorded as failures so every discovered
// file ends up with an outcome.
func (p *Pipeline) runDirectoryJob(ctx context.Context, job *Job, files []string, candidates []string, topK int) {
	defer close(job.done)

	g := new(errgroup.Group)
	g.SetLimit(p.settings.Tagger.MaxWorkers)

	for _, file := range files {
		file := file
		if err := ctx.Err(); err != nil {
			job.record(Outcome{Path: file, Err: err})
			continue
		}

		g.Go(func() error {
			tags, err := p.TagOne(ctx, file, candidates, topK)
			if err != nil {
				getLogger().Warn("File failed",
					"job_id", job.ID,
					"path", file,
					"error", err)
				job.record(Outcome{Path: file, Err: err})
				return nil
			}
			job.record(Outcome{Path: file, Tags: tags})
			return nil
		})
	}

	// Workers never return errors; failures live in the outcomes.
	_ = g.Wait()

	succeeded, failed, total := job.Counts()
	getLogger().Info("Directory job finished",
		"job_id", job.ID,
		"root", job.Root,
		"succeeded", succeeded,
		"failed", failed,
		"total", total)
}
