package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phototag/phototag-go/internal/conf"
)

func TestLabelsFlagPopulatesSettings(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	rootCmd := RootCommand(settings)

	require.NoError(t, rootCmd.PersistentFlags().Parse(
		[]string{"--labels", "dog,cat", "--topk", "2"}))

	assert.Equal(t, []string{"dog", "cat"}, settings.Tagger.Labels)
	assert.Equal(t, 2, settings.Tagger.TopK)
}

func TestLabelsFlagDefaultsToFullVocabulary(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	rootCmd := RootCommand(settings)

	require.NoError(t, rootCmd.PersistentFlags().Parse(nil))
	assert.Empty(t, settings.Tagger.Labels)
}
