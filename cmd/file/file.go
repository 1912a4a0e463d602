package file

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/pipeline"
)

// Command creates a new file command for tagging a single image.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [image]",
		Short: "Tag a single image",
		Long:  `Score a single image against the vocabulary and store its top labels.`,
		Args:  cobra.ExactArgs(1), // the command expects exactly one argument
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return executeFileTagging(cmd.Context(), settings)
		},
	}

	return cmd
}

func executeFileTagging(ctx context.Context, settings *conf.Settings) error {
	p, closeStore, err := pipeline.FromSettings(settings)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	// An empty label list means the full vocabulary.
	var candidates []string
	if len(settings.Tagger.Labels) > 0 {
		candidates = settings.Tagger.Labels
	}

	tags, err := p.TagOne(ctx, settings.Input.Path, candidates, settings.Tagger.TopK)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		fmt.Printf("%s\t%.4f\n", tag.Label, tag.Confidence)
	}
	return nil
}
