package directory

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/pipeline"
)

// Command creates a new cobra.Command for directory tagging.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory [path]",
		Short: "Tag all eligible images in a directory",
		Long:  "Provide a directory path to tag every image file within it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return executeDirectoryTagging(cmd.Context(), settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags defines flags specific to the directory command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVarP(&settings.Input.Recursive, "recursive", "r", settings.Input.Recursive, "Recursively tag subdirectories")
	cmd.Flags().StringSliceVarP(&settings.Tagger.Extensions, "extensions", "e", settings.Tagger.Extensions, "Eligible file extensions")
}

func executeDirectoryTagging(ctx context.Context, settings *conf.Settings) error {
	// SIGINT stops scheduling new files; in-flight ones drain.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	job, err := p.TagDirectory(ctx, settings.Input.Path, candidates, settings.Tagger.TopK, settings.Tagger.Extensions)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d images in %s\n", job.Total, settings.Input.Path)

	<-job.Done()

	succeeded, failed, total := job.Counts()
	fmt.Printf("Done: %d succeeded, %d failed, %d total\n", succeeded, failed, total)
	if failed > 0 {
		for _, outcome := range job.Outcomes() {
			if outcome.Err != nil {
				fmt.Printf("failed: %s: %v\n", outcome.Path, outcome.Err)
			}
		}
	}
	return nil
}
