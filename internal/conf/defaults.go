// defaults.go: registers default configuration values with viper.
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for each configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)
	viper.SetDefault("main.name", "phototag")

	viper.SetDefault("input.path", "")
	viper.SetDefault("input.recursive", false)

	viper.SetDefault("tagger.topk", 5)
	viper.SetDefault("tagger.maxworkers", 5)
	viper.SetDefault("tagger.extensions", []string{".jpg", ".jpeg", ".png", ".webp"})
	viper.SetDefault("tagger.vocabularypath", "")
	viper.SetDefault("tagger.labels", []string{})

	viper.SetDefault("scorer.url", "http://localhost:8000/score")
	viper.SetDefault("scorer.timeout", 30*time.Second)
	viper.SetDefault("scorer.retries", 1)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "phototag.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "phototag")
	viper.SetDefault("output.mysql.password", "phototag")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")
	viper.SetDefault("output.mysql.database", "photo_archive")
}
