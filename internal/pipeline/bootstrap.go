// bootstrap.go: wires a pipeline from settings for the CLI entry points.
package pipeline

import (
	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/datastore"
	"github.com/phototag/phototag-go/internal/scorer"
	"github.com/phototag/phototag-go/internal/vocabulary"
)

// FromSettings constructs a ready-to-use pipeline: vocabulary (embedded or
// operator override), HTTP scorer client and an opened datastore. The
// returned close function releases the database connection.
func FromSettings(settings *conf.Settings) (*Pipeline, func() error, error) {
	var vocab *vocabulary.Vocabulary
	var err error
	if settings.Tagger.VocabularyPath != "" {
		vocab, err = vocabulary.LoadFile(settings.Tagger.VocabularyPath)
	} else {
		vocab, err = vocabulary.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return nil, nil, err
	}

	sc := scorer.NewHTTPScorer(&settings.Scorer)

	p, err := New(settings, sc, store, vocab)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return p, store.Close, nil
}
