package configuration

import (
	"strings"
	"time"

	"github.com/app-nerds/configinator"
)

const (
	StoreMemory = "memory"
	StoreSqlite = "sqlite"
)

type Config struct {
	CarouselInterval int    `flag:"ci" env:"CAROUSEL_INTERVAL" default:"5" description:"Seconds between carousel slides"`
	DataMigrationDir string `flag:"dmd" env:"DATA_MIGRATION_DIR" default:"../../sql-migrations" description:"Migration folder"`
	DSN              string `flag:"dsn" env:"DSN" default:"file:./data/clickygallery.db" description:"Database connection, used when STORE is sqlite"`
	Host             string `flag:"host" env:"HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	ImportDirectory  string `flag:"id" env:"IMPORT_DIRECTORY" default:"" description:"Folder scanned for JPEGs to import. Empty disables importing"`
	ImportSchedule   string `flag:"is" env:"IMPORT_SCHEDULE" default:"*/5 * * * *" description:"Cron schedule for the importer"`
	LogLevel         string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MapBaseURL       string `flag:"mbu" env:"MAP_BASE_URL" default:"https://www.google.com/maps" description:"Map service opened for photo locations"`
	MaxImportWorkers int    `flag:"miw" env:"MAX_IMPORT_WORKERS" default:"5" description:"Number of concurrent import workers"`
	MaxUploadMB      int    `flag:"mum" env:"MAX_UPLOAD_MB" default:"5" description:"Largest accepted image upload in megabytes"`
	SeedFile         string `flag:"seed" env:"SEED_FILE" default:"" description:"YAML file with the starting photos. Empty uses the built-in collection"`
	Store            string `flag:"store" env:"STORE" default:"memory" description:"Photo store. Valid values are 'memory' and 'sqlite'"`
	ThumbnailSize    int    `flag:"ts" env:"THUMBNAIL_SIZE" default:"400" description:"Longest edge of generated thumbnails in pixels"`
	UploadDirectory  string `flag:"ud" env:"UPLOAD_DIRECTORY" default:"./data/uploads" description:"Where uploaded and imported images are kept"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

func (c *Config) UsesSqlite() bool {
	return strings.EqualFold(c.Store, StoreSqlite)
}

func (c *Config) CarouselIntervalDuration() time.Duration {
	if c.CarouselInterval <= 0 {
		return 5 * time.Second
	}

	return time.Duration(c.CarouselInterval) * time.Second
}

func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 5 << 20
	}

	return int64(c.MaxUploadMB) << 20
}
