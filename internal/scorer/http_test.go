package scorer

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/errors"
)

const testURL = "http://scorer.local/score"

func newTestScorer(t *testing.T) *HTTPScorer {
	t.Helper()
	s := NewHTTPScorer(&conf.ScorerSettings{URL: testURL, Timeout: 5 * time.Second})
	httpmock.ActivateNonDefault(s.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return s
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func TestScoreSuccess(t *testing.T) {
	s := newTestScorer(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		func(req *http.Request) (*http.Response, error) {
			var body scoreRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, "bad body"), nil
			}
			assert.Equal(t, []string{"dog", "cat", "car"}, body.Labels)
			assert.NotEmpty(t, body.Image, "request must carry the encoded image")

			return httpmock.NewJsonResponse(http.StatusOK, scoreResponse{
				Scores: map[string]float64{"dog": 0.9, "cat": 0.3, "car": 0.1},
			})
		})

	scores, err := s.Score(context.Background(), testImage(), []string{"dog", "cat", "car"})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, scores["dog"], 1e-9)
	assert.InDelta(t, 0.3, scores["cat"], 1e-9)
	assert.Len(t, scores, 3)
}

func TestScoreServerError(t *testing.T) {
	s := newTestScorer(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, "cuda out of memory"))

	_, err := s.Score(context.Background(), testImage(), []string{"dog"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryScorer))
	assert.Contains(t, err.Error(), "cuda out of memory")
}

func TestScoreMalformedResponse(t *testing.T) {
	s := newTestScorer(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		httpmock.NewStringResponder(http.StatusOK, "{not json"))

	_, err := s.Score(context.Background(), testImage(), []string{"dog"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryScorer))
}

func TestScoreEmptyScores(t *testing.T) {
	s := newTestScorer(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		httpmock.NewStringResponder(http.StatusOK, `{"scores":{}}`))

	_, err := s.Score(context.Background(), testImage(), []string{"dog"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryScorer))
}

func TestScoreNoLabels(t *testing.T) {
	s := newTestScorer(t)

	_, err := s.Score(context.Background(), testImage(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Zero(t, httpmock.GetTotalCallCount(), "validation failures must not reach the network")
}

func TestScoreContextCancelled(t *testing.T) {
	s := newTestScorer(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		httpmock.NewStringResponder(http.StatusOK, `{"scores":{"dog":0.9}}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Score(ctx, testImage(), []string{"dog"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryScorer))
}
