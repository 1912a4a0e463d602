package query

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/datastore"
)

// taggedImageView is the plain structured output printed for one record.
type taggedImageView struct {
	Path       string           `json:"path"`
	Tags       datastore.TagSet `json:"tags"`
	CapturedAt *time.Time       `json:"captured_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Command creates the query command group: the read side of the tag store.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query stored tags",
	}

	cmd.AddCommand(pathCommand(settings), labelCommand(settings), statsCommand(settings))
	return cmd
}

func pathCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "path [image]",
		Short: "Show the stored tags for an image path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(settings, func(store datastore.Interface) error {
				absPath, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				record, err := store.GetByPath(absPath)
				if err != nil {
					return err
				}
				view, err := toView(record)
				if err != nil {
					return err
				}
				return printJSON(view)
			})
		},
	}
}

func labelCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "label [presentation label]",
		Short: "List every image tagged with a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(settings, func(store datastore.Interface) error {
				records, err := store.FindByLabel(args[0])
				if err != nil {
					return err
				}
				views := make([]taggedImageView, 0, len(records))
				for i := range records {
					view, err := toView(&records[i])
					if err != nil {
						return err
					}
					views = append(views, view)
				}
				fmt.Printf("Found %d images\n", len(views))
				return printJSON(views)
			})
		},
	}
}

func statsCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tag store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(settings, func(store datastore.Interface) error {
				stats, err := store.Stats()
				if err != nil {
					return err
				}
				return printJSON(stats)
			})
		},
	}
}

// withStore opens the configured datastore for the duration of one query.
func withStore(settings *conf.Settings, fn func(datastore.Interface) error) error {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func toView(record *datastore.TaggedImage) (taggedImageView, error) {
	tags, err := record.TagSet()
	if err != nil {
		return taggedImageView{}, err
	}
	return taggedImageView{
		Path:       record.Path,
		Tags:       tags,
		CapturedAt: record.CapturedAt,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
