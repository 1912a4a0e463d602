// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations the tagging pipeline and the query surface rely on.
type Interface interface {
	Open() error
	Close() error
	UpsertTaggedImage(path string, tags TagSet, capturedAt *time.Time) error
	GetByPath(path string) (*TaggedImage, error)
	FindByLabel(label string) ([]TaggedImage, error)
	Stats() (Stats, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// Stats summarizes the stored tagging records.
type Stats struct {
	TotalImages        int64
	ImagesWithCaptured int64
	FirstProcessed     *time.Time
	LastProcessed      *time.Time
}

// New creates a new datastore instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		// conf validation guarantees one backend is enabled
		return nil
	}
}

// UpsertTaggedImage stores the tag set for an image path. The write is a
// single atomic insert-or-update keyed on the path: on conflict the tags,
// capture time and updated_at are replaced while created_at is preserved
// from the first insert.
func (ds *DataStore) UpsertTaggedImage(path string, tags TagSet, capturedAt *time.Time) error {
	if path == "" {
		return validationError("image path must not be empty", "path", path)
	}
	encoded, err := EncodeTagSet(tags)
	if err != nil {
		return err
	}

	now := time.Now()
	record := &TaggedImage{
		Path:       path,
		Tags:       encoded,
		CapturedAt: capturedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = ds.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"tags", "captured_at", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return dbError(err, "upsert_tagged_image", "path", path)
	}

	getLogger().Debug("Tagged image stored", "path", path, "tags", len(tags))
	return nil
}

// GetByPath retrieves the tagging record for an image path.
func (ds *DataStore) GetByPath(path string) (*TaggedImage, error) {
	var record TaggedImage
	err := ds.DB.Where("path = ?", path).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Newf("no tags stored for %s", path).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Context("path", path).
				Build()
		}
		return nil, dbError(err, "get_by_path", "path", path)
	}
	return &record, nil
}

// FindByLabel returns every tagged image whose stored tag set contains the
// given presentation label, regardless of rank position. A dialect-specific
// SQL prefilter narrows the scan; exact membership is verified after decoding
// since the prefilter may overmatch.
func (ds *DataStore) FindByLabel(label string) ([]TaggedImage, error) {
	if label == "" {
		return nil, validationError("search label must not be empty", "label", label)
	}

	expr, arg := ds.labelPrefilter(label)

	var candidates []TaggedImage
	err := ds.DB.Where(expr, arg).
		Order("created_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, dbError(err, "find_by_label", "label", label)
	}

	matches := make([]TaggedImage, 0, len(candidates))
	for i := range candidates {
		tags, err := candidates[i].TagSet()
		if err != nil {
			return nil, err
		}
		if tags.Contains(label) {
			matches = append(matches, candidates[i])
		}
	}
	return matches, nil
}

// labelPrefilter returns the database-specific SQL fragment used to narrow a
// label search before exact verification.
func (ds *DataStore) labelPrefilter(label string) (expr string, arg any) {
	switch ds.DB.Dialector.Name() {
	case "mysql":
		// The stored encoding is valid JSON, so MySQL's JSON functions apply.
		return "JSON_SEARCH(tags, 'one', ?, NULL, '$.tags[*].label') IS NOT NULL", label
	default:
		// SQLite has no native JSON column type; substring matching on the
		// encoded form only ever overmatches, never undermatches.
		return "tags LIKE ?", `%"` + label + `"%`
	}
}

// Stats reports aggregate information about the stored records.
func (ds *DataStore) Stats() (Stats, error) {
	var stats Stats

	if err := ds.DB.Model(&TaggedImage{}).Count(&stats.TotalImages).Error; err != nil {
		return Stats{}, dbError(err, "stats_total")
	}
	if err := ds.DB.Model(&TaggedImage{}).
		Where("captured_at IS NOT NULL").
		Count(&stats.ImagesWithCaptured).Error; err != nil {
		return Stats{}, dbError(err, "stats_captured")
	}

	var first TaggedImage
	err := ds.DB.Order("created_at ASC").First(&first).Error
	switch {
	case err == nil:
		stats.FirstProcessed = &first.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return Stats{}, dbError(err, "stats_first")
	}

	var last TaggedImage
	err = ds.DB.Order("updated_at DESC").First(&last).Error
	switch {
	case err == nil:
		stats.LastProcessed = &last.UpdatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return Stats{}, dbError(err, "stats_last")
	}

	return stats, nil
}

// performAutoMigration creates or updates the tagging table. It only ever
// touches this application's own model, so running it against a database that
// already holds unrelated tables is safe, and re-running it is a no-op.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&TaggedImage{}); err != nil {
		return dbError(err, "auto_migrate", "db_type", dbType)
	}

	if debug {
		getLogger().Debug("Database connection initialized", "db_type", dbType, "connection", connectionInfo)
	}
	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
