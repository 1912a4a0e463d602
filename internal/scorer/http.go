package scorer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/errors"
)

// HTTPScorer talks to a CLIP scoring service over HTTP. The service receives
// a PNG-encoded image and the candidate labels, and answers with one
// similarity score per label.
type HTTPScorer struct {
	url    string
	client *http.Client
}

// scoreRequest is the wire format sent to the scoring service.
type scoreRequest struct {
	Image  string   `json:"image"` // base64-encoded PNG
	Labels []string `json:"labels"`
}

// scoreResponse is the wire format returned by the scoring service.
type scoreResponse struct {
	Scores map[string]float64 `json:"scores"`
}

// NewHTTPScorer builds a scorer client from settings. The returned client is
// immutable and safe for concurrent use.
func NewHTTPScorer(settings *conf.ScorerSettings) *HTTPScorer {
	return &HTTPScorer{
		url: settings.URL,
		client: &http.Client{
			Timeout: settings.Timeout,
		},
	}
}

// Score implements Interface.
func (s *HTTPScorer) Score(ctx context.Context, img image.Image, labels []string) (map[string]float64, error) {
	if len(labels) == 0 {
		return nil, errors.Newf("no candidate labels").
			Component("scorer").
			Category(errors.CategoryValidation).
			Build()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.New(err).
			Component("scorer").
			Category(errors.CategoryImageDecode).
			Build()
	}

	payload, err := json.Marshal(scoreRequest{
		Image:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Labels: labels,
	})
	if err != nil {
		return nil, errors.New(err).
			Component("scorer").
			Category(errors.CategoryScorer).
			Build()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.New(err).
			Component("scorer").
			Category(errors.CategoryScorer).
			Context("url", s.url).
			Build()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.New(err).
			Component("scorer").
			Category(errors.CategoryScorer).
			Context("url", s.url).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Newf("scoring service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body)).
			Component("scorer").
			Category(errors.CategoryScorer).
			Context("url", s.url).
			Context("status", resp.StatusCode).
			Build()
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.New(fmt.Errorf("decoding scorer response: %w", err)).
			Component("scorer").
			Category(errors.CategoryScorer).
			Context("url", s.url).
			Build()
	}
	if len(decoded.Scores) == 0 {
		return nil, errors.Newf("scoring service returned no scores").
			Component("scorer").
			Category(errors.CategoryScorer).
			Context("url", s.url).
			Build()
	}

	return decoded.Scores, nil
}
