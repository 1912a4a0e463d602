// Package vocabulary holds the scoring label set and its presentation mapping.
package vocabulary

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phototag/phototag-go/internal/errors"
)

//go:embed vocabulary.yaml
var vocabularyFiles embed.FS

// entry is one scoring label with its optional presentation translation.
type entry struct {
	Label       string `yaml:"label"`
	Translation string `yaml:"translation,omitempty"`
}

type vocabularyFile struct {
	Labels []entry `yaml:"labels"`
}

// Vocabulary is the fixed scoring label set. Label order is significant: it is
// the tie-break order used by ranking.
type Vocabulary struct {
	labels       []string
	translations map[string]string
}

// Load parses the embedded default vocabulary.
func Load() (*Vocabulary, error) {
	data, err := vocabularyFiles.ReadFile("vocabulary.yaml")
	if err != nil {
		return nil, errors.New(err).
			Component("vocabulary").
			Category(errors.CategoryVocabulary).
			Build()
	}
	return parse(data)
}

// LoadFile parses a vocabulary file from disk, overriding the embedded default.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("vocabulary").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return parse(data)
}

func parse(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.New(err).
			Component("vocabulary").
			Category(errors.CategoryVocabulary).
			Build()
	}
	if len(file.Labels) == 0 {
		return nil, errors.Newf("vocabulary contains no labels").
			Component("vocabulary").
			Category(errors.CategoryVocabulary).
			Build()
	}

	v := &Vocabulary{
		labels:       make([]string, 0, len(file.Labels)),
		translations: make(map[string]string, len(file.Labels)),
	}
	for _, e := range file.Labels {
		if e.Label == "" {
			return nil, errors.Newf("vocabulary contains an entry without a label").
				Component("vocabulary").
				Category(errors.CategoryVocabulary).
				Build()
		}
		if _, exists := v.translations[e.Label]; exists {
			return nil, errors.Newf("duplicate vocabulary label: %s", e.Label).
				Component("vocabulary").
				Category(errors.CategoryVocabulary).
				Build()
		}
		v.labels = append(v.labels, e.Label)
		if e.Translation != "" {
			v.translations[e.Label] = e.Translation
		} else {
			// Unmapped labels present as themselves
			v.translations[e.Label] = e.Label
		}
	}
	return v, nil
}

// Labels returns the scoring labels in file order.
func (v *Vocabulary) Labels() []string {
	labels := make([]string, len(v.labels))
	copy(labels, v.labels)
	return labels
}

// Size returns the number of labels in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.labels)
}

// Translate maps a scoring label to its presentation label. Labels without a
// mapping, including labels outside the vocabulary, are returned unchanged.
func (v *Vocabulary) Translate(label string) string {
	if translated, ok := v.translations[label]; ok {
		return translated
	}
	return label
}
