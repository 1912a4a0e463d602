// validate.go: settings validation before the application starts any work.
package conf

import (
	"fmt"
	"strings"
)

// ValidateSettings rejects configurations that cannot produce a working tagger.
func ValidateSettings(settings *Settings) error {
	if settings.Tagger.TopK < 1 {
		return fmt.Errorf("tagger.topk must be at least 1, got %d", settings.Tagger.TopK)
	}
	if settings.Tagger.MaxWorkers < 1 {
		return fmt.Errorf("tagger.maxworkers must be at least 1, got %d", settings.Tagger.MaxWorkers)
	}
	if len(settings.Tagger.Extensions) == 0 {
		return fmt.Errorf("tagger.extensions must list at least one file extension")
	}
	for _, ext := range settings.Tagger.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("tagger.extensions entries must start with a dot, got %q", ext)
		}
	}

	if settings.Scorer.URL == "" {
		return fmt.Errorf("scorer.url must be set")
	}
	if settings.Scorer.Timeout <= 0 {
		return fmt.Errorf("scorer.timeout must be positive")
	}
	if settings.Scorer.Retries < 0 {
		return fmt.Errorf("scorer.retries must not be negative")
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		return fmt.Errorf("at least one output database must be enabled")
	}
	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return fmt.Errorf("output.sqlite.path must be set when sqlite output is enabled")
	}

	return nil
}
