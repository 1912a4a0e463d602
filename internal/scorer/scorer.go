// Package scorer defines the embedding scorer contract and its HTTP client.
//
// The scorer is an external collaborator: a service holding a CLIP-style
// model that, given one image and a set of candidate labels, returns a
// similarity score per label. Model loading and architecture are the
// service's concern; this package only speaks the inference contract.
package scorer

import (
	"context"
	"image"
)

// Interface is the single capability consumed from the embedding scorer.
type Interface interface {
	// Score returns a similarity score for each candidate label. The label
	// order in the request is preserved by the caller for tie-breaking; the
	// returned mapping carries no order of its own.
	Score(ctx context.Context, img image.Image, labels []string) (map[string]float64, error)
}
