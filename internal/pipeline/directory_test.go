package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phototag/phototag-go/internal/errors"
)

func TestEnumerateImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	writePNG(t, dir, "a.png")
	writePNG(t, dir, "b.PNG") // extension matching is case-insensitive
	writePNG(t, sub, "c.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	flat, err := EnumerateImages(dir, []string{".png"}, false)
	require.NoError(t, err)
	assert.Len(t, flat, 2, "non-recursive enumeration skips subdirectories and non-images")

	deep, err := EnumerateImages(dir, []string{".png"}, true)
	require.NoError(t, err)
	assert.Len(t, deep, 3)
	for _, f := range deep {
		assert.True(t, filepath.IsAbs(f), "enumeration must yield absolute paths")
	}
}

func TestEnumerateImagesRejectsBadRoot(t *testing.T) {
	t.Parallel()

	_, err := EnumerateImages(filepath.Join(t.TempDir(), "missing"), []string{".png"}, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileIO))

	file := writePNG(t, t.TempDir(), "file.png")
	_, err = EnumerateImages(file, []string{".png"}, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestTagDirectoryIsolatesFailures(t *testing.T) {
	t.Parallel()

	sc := &fakeScorer{fn: func(_ int, labels []string) (map[string]float64, error) {
		scores := make(map[string]float64, len(labels))
		for i, l := range labels {
			scores[l] = 1.0 - float64(i)*0.1
		}
		return scores, nil
	}}
	p, store := newTestPipeline(t, sc)

	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writePNG(t, dir, fmt.Sprintf("img%d.png", i))
	}
	corrupt := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("broken bytes"), 0o644))

	job, err := p.TagDirectory(context.Background(), dir, []string{"dog", "cat"}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 11, job.Total, "file count is reported from eager enumeration")

	require.NoError(t, job.Wait(context.Background()))

	succeeded, failed, total := job.Counts()
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 11, total)

	// The failure must be attributable to the corrupt file by path.
	var failedOutcome *Outcome
	for _, o := range job.Outcomes() {
		if o.Err != nil {
			failedOutcome = &o
			break
		}
	}
	require.NotNil(t, failedOutcome)
	assert.Equal(t, corrupt, failedOutcome.Path)
	assert.True(t, errors.HasCategory(failedOutcome.Err, errors.CategoryImageDecode))

	// And the 10 healthy files are all persisted.
	for _, o := range job.Outcomes() {
		if o.Err != nil {
			continue
		}
		_, err := store.GetByPath(o.Path)
		assert.NoError(t, err)
	}
}

func TestTagDirectoryEmptyDirectory(t *testing.T) {
	t.Parallel()

	sc := &fakeScorer{fn: func(_ int, _ []string) (map[string]float64, error) {
		return map[string]float64{"dog": 0.9}, nil
	}}
	p, _ := newTestPipeline(t, sc)

	_, err := p.TagDirectory(context.Background(), t.TempDir(), []string{"dog"}, 1, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestTagDirectoryGracefulCancellation(t *testing.T) {
	t.Parallel()

	sc := &fakeScorer{fn: func(_ int, _ []string) (map[string]float64, error) {
		return map[string]float64{"dog": 0.9}, nil
	}}
	p, _ := newTestPipeline(t, sc)

	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writePNG(t, dir, fmt.Sprintf("img%d.png", i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before any file is scheduled

	job, err := p.TagDirectory(ctx, dir, []string{"dog"}, 1, nil)
	require.NoError(t, err, "enumeration already happened; the job handle is still returned")

	require.NoError(t, job.Wait(context.Background()))
	succeeded, failed, total := job.Counts()
	assert.Zero(t, succeeded)
	assert.Equal(t, 5, failed, "unscheduled files are recorded as failures, not lost")
	assert.Equal(t, 5, total)
}

func TestJobWaitHonorsContext(t *testing.T) {
	t.Parallel()

	job := newJob("/photos", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := job.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(job.done)
	require.NoError(t, job.Wait(context.Background()))
}
