package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phototag/phototag-go/cmd/directory"
	"github.com/phototag/phototag-go/cmd/file"
	"github.com/phototag/phototag-go/cmd/query"
	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phototag",
		Short: "Photo tagging CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		file.Command(settings),
		directory.Command(settings),
		query.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Flags are parsed at this point; logging level follows --debug.
		logging.Init(settings.Debug)
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines global flags shared by all subcommands.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().IntVarP(&settings.Tagger.TopK, "topk", "k", settings.Tagger.TopK, "Number of labels to keep per image")
	rootCmd.PersistentFlags().IntVarP(&settings.Tagger.MaxWorkers, "workers", "w", settings.Tagger.MaxWorkers, "Concurrency limit for directory jobs")
	rootCmd.PersistentFlags().StringVar(&settings.Scorer.URL, "scorer-url", settings.Scorer.URL, "Endpoint of the scoring service")
	rootCmd.PersistentFlags().StringVar(&settings.Tagger.VocabularyPath, "vocabulary", settings.Tagger.VocabularyPath, "Path to a vocabulary file overriding the embedded one")
	rootCmd.PersistentFlags().StringSliceVar(&settings.Tagger.Labels, "labels", settings.Tagger.Labels, "Candidate labels to score instead of the full vocabulary")
}
