// tagset.go: versioned wire encoding for persisted tag sets.
package datastore

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/phototag/phototag-go/internal/errors"
)

// tagSetVersion is the current encoding version. Decoding rejects any other
// version instead of guessing at the shape.
const tagSetVersion = 1

// tagSetEnvelope is the stored document: a version marker and the ordered tags.
type tagSetEnvelope struct {
	Version int    `json:"v"`
	Tags    TagSet `json:"tags"`
}

// EncodeTagSet serializes a tag set into its portable stored form. The
// encoding is plain JSON, readable by backends with or without a native
// JSON column type, and round-trips labels and scores exactly. HTML escaping
// is disabled: labels must appear byte-for-byte in the stored document, or
// the substring prefilter in FindByLabel would miss them.
func EncodeTagSet(tags TagSet) (string, error) {
	if len(tags) == 0 {
		return "", errors.Newf("refusing to encode an empty tag set").
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}
	for i, tag := range tags {
		if tag.Label == "" {
			return "", errors.Newf("tag at rank %d has an empty label", i).
				Component("datastore").
				Category(errors.CategoryValidation).
				Build()
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tagSetEnvelope{Version: tagSetVersion, Tags: tags}); err != nil {
		return "", errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// DecodeTagSet parses a stored tag set. Unknown versions and unknown fields
// are rejected rather than silently misparsed.
func DecodeTagSet(data string) (TagSet, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()

	var envelope tagSetEnvelope
	if err := dec.Decode(&envelope); err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "decode_tagset").
			Build()
	}
	if envelope.Version != tagSetVersion {
		return nil, errors.Newf("unsupported tag set encoding version %d", envelope.Version).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "decode_tagset").
			Build()
	}
	if len(envelope.Tags) == 0 {
		return nil, errors.Newf("stored tag set is empty").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "decode_tagset").
			Build()
	}
	return envelope.Tags, nil
}
