package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/clickygallery/pkg/models"
	"github.com/rfberaldo/sqlz"
)

const photoColumns = `
	id
	, title
	, description
	, image_url
	, thumbnail_url
	, location_name
	, latitude
	, longitude
	, tags
	, featured
	, created_at
	, source_path
`

type SqlitePhotoServiceConfig struct {
	DB *sqlz.DB

	// Optional. Defaults to NewPhotoID.
	IDGenerator func() string

	// Optional. Defaults to the current UTC time.
	Clock func() time.Time
}

/*
SqlitePhotoService stores photos in SQLite. Row order follows the
autoincrement seq column so it matches insertion order.
*/
type SqlitePhotoService struct {
	db          *sqlz.DB
	idGenerator func() string
	clock       func() time.Time
}

type photoRow struct {
	ID           string               `db:"id"`
	Title        string               `db:"title"`
	Description  sql.NullString       `db:"description"`
	ImageURL     string               `db:"image_url"`
	ThumbnailURL sql.NullString       `db:"thumbnail_url"`
	LocationName sql.NullString       `db:"location_name"`
	Latitude     sql.NullFloat64      `db:"latitude"`
	Longitude    sql.NullFloat64      `db:"longitude"`
	Tags         models.DbStringSlice `db:"tags"`
	Featured     bool                 `db:"featured"`
	CreatedAt    time.Time            `db:"created_at"`
	SourcePath   sql.NullString       `db:"source_path"`
}

func NewSqlitePhotoService(config SqlitePhotoServiceConfig) SqlitePhotoService {
	result := SqlitePhotoService{
		db:          config.DB,
		idGenerator: config.IDGenerator,
		clock:       config.Clock,
	}

	if result.idGenerator == nil {
		result.idGenerator = NewPhotoID
	}

	if result.clock == nil {
		result.clock = now
	}

	return result
}

func DBContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	return ctx, cancel
}

func (s SqlitePhotoService) All() ([]*models.Photo, error) {
	var (
		err  error
		rows = []*photoRow{}
	)

	statement := `SELECT ` + photoColumns + ` FROM photos ORDER BY seq ASC`

	ctx, cancel := DBContext()
	defer cancel()

	if err = s.db.Query(ctx, &rows, statement); err != nil {
		return []*models.Photo{}, fmt.Errorf("error querying for all photos: %w", err)
	}

	return rowsToPhotos(rows), nil
}

func (s SqlitePhotoService) Featured() ([]*models.Photo, error) {
	var (
		err  error
		rows = []*photoRow{}
	)

	statement := `SELECT ` + photoColumns + ` FROM photos WHERE featured=1 ORDER BY seq ASC`

	ctx, cancel := DBContext()
	defer cancel()

	if err = s.db.Query(ctx, &rows, statement); err != nil {
		return []*models.Photo{}, fmt.Errorf("error querying for featured photos: %w", err)
	}

	return rowsToPhotos(rows), nil
}

func (s SqlitePhotoService) GetPhotoByID(id string) (*models.Photo, error) {
	ctx, cancel := DBContext()
	defer cancel()

	return s.getPhotoByID(ctx, s.db, id)
}

func (s SqlitePhotoService) Create(photo models.NewPhoto) (*models.Photo, error) {
	newPhoto := photo.ToPhoto(s.idGenerator(), s.clock())

	ctx, cancel := DBContext()
	defer cancel()

	if err := s.insert(ctx, s.db, newPhoto); err != nil {
		return nil, err
	}

	return newPhoto, nil
}

func (s SqlitePhotoService) Update(id string, update models.PhotoUpdate) (*models.Photo, error) {
	var (
		err      error
		tx       *sqlz.Tx
		existing *models.Photo
		tags     driver.Value
		success  = false
	)

	ctx, cancel := DBContext()
	defer cancel()

	if tx, err = s.db.Begin(ctx); err != nil {
		return nil, fmt.Errorf("error starting transaction when updating photo %s: %w", id, err)
	}

	defer func() {
		if success {
			_ = tx.Commit()
		} else {
			_ = tx.Rollback()
		}
	}()

	if existing, err = s.getPhotoByID(ctx, tx, id); err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, nil
	}

	merged := update.Apply(existing)
	row := photoToRow(merged)

	if tags, err = row.Tags.Value(); err != nil {
		return nil, fmt.Errorf("error encoding tags for photo %s: %w", id, err)
	}

	statement := `
UPDATE photos SET
	title=?
	, description=?
	, image_url=?
	, thumbnail_url=?
	, location_name=?
	, latitude=?
	, longitude=?
	, tags=?
	, featured=?
WHERE id=?
	`

	args := []any{
		row.Title,
		row.Description,
		row.ImageURL,
		row.ThumbnailURL,
		row.LocationName,
		row.Latitude,
		row.Longitude,
		tags,
		row.Featured,
		id,
	}

	if _, err = tx.Exec(ctx, statement, args...); err != nil {
		return nil, fmt.Errorf("error updating photo %s: %w", id, err)
	}

	success = true
	return merged, nil
}

func (s SqlitePhotoService) Delete(id string) (bool, error) {
	var (
		err      error
		r        sql.Result
		affected int64
	)

	ctx, cancel := DBContext()
	defer cancel()

	if r, err = s.db.Exec(ctx, `DELETE FROM photos WHERE id=?`, id); err != nil {
		return false, fmt.Errorf("error deleting photo %s: %w", id, err)
	}

	if affected, err = r.RowsAffected(); err != nil {
		return false, fmt.Errorf("error reading affected rows deleting photo %s: %w", id, err)
	}

	return affected > 0, nil
}

/*
Restore inserts photos as given, keeping IDs and creation times.
Photos whose ID already exists are skipped so seeding a persistent
database twice is harmless.
*/
func (s SqlitePhotoService) Restore(photos []*models.Photo) error {
	var (
		err     error
		tx      *sqlz.Tx
		success = false
	)

	ctx, cancel := DBContext()
	defer cancel()

	if tx, err = s.db.Begin(ctx); err != nil {
		return fmt.Errorf("error starting transaction when restoring photos: %w", err)
	}

	defer func() {
		if success {
			_ = tx.Commit()
		} else {
			_ = tx.Rollback()
		}
	}()

	for _, photo := range photos {
		var existing *models.Photo

		if existing, err = s.getPhotoByID(ctx, tx, photo.ID); err != nil {
			return err
		}

		if existing != nil {
			continue
		}

		if err = s.insert(ctx, tx, photo); err != nil {
			return err
		}
	}

	success = true
	return nil
}

type querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRow(ctx context.Context, dst any, query string, args ...any) error
}

func (s SqlitePhotoService) getPhotoByID(ctx context.Context, q querier, id string) (*models.Photo, error) {
	var (
		err error
		row = photoRow{}
	)

	statement := `SELECT ` + photoColumns + ` FROM photos WHERE id=?`

	if err = q.QueryRow(ctx, &row, statement, id); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("error querying for photo %s: %w", id, err)
	}

	return rowToPhoto(row), nil
}

func (s SqlitePhotoService) insert(ctx context.Context, q querier, photo *models.Photo) error {
	row := photoToRow(photo)

	// Bound as the JSON text. sqlz would expand a slice into an IN list.
	tags, err := row.Tags.Value()
	if err != nil {
		return fmt.Errorf("error encoding tags for photo %s: %w", photo.ID, err)
	}

	statement := `
INSERT INTO photos (` + photoColumns + `) VALUES (
	?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
	, ?
)
	`

	args := []any{
		row.ID,
		row.Title,
		row.Description,
		row.ImageURL,
		row.ThumbnailURL,
		row.LocationName,
		row.Latitude,
		row.Longitude,
		tags,
		row.Featured,
		row.CreatedAt,
		row.SourcePath,
	}

	if _, err = q.Exec(ctx, statement, args...); err != nil {
		return fmt.Errorf("error inserting photo %s: %w", photo.ID, err)
	}

	return nil
}

func photoToRow(p *models.Photo) photoRow {
	result := photoRow{
		ID:           p.ID,
		Title:        p.Title,
		Description:  nullString(p.Description),
		ImageURL:     p.ImageURL,
		ThumbnailURL: nullString(p.ThumbnailURL),
		Tags:         models.DbStringSlice(p.Tags),
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt,
		SourcePath:   nullString(p.SourcePath),
	}

	if p.Location != nil {
		result.LocationName = sql.NullString{String: p.Location.Name, Valid: true}
		result.Latitude = sql.NullFloat64{Float64: p.Location.Latitude, Valid: true}
		result.Longitude = sql.NullFloat64{Float64: p.Location.Longitude, Valid: true}
	}

	return result
}

func rowToPhoto(row photoRow) *models.Photo {
	result := &models.Photo{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description.String,
		ImageURL:     row.ImageURL,
		ThumbnailURL: row.ThumbnailURL.String,
		Featured:     row.Featured,
		CreatedAt:    row.CreatedAt.UTC(),
		SourcePath:   row.SourcePath.String,
	}

	if len(row.Tags) > 0 {
		result.Tags = []string(row.Tags)
	}

	if row.Latitude.Valid && row.Longitude.Valid {
		result.Location = &models.Location{
			Name:      row.LocationName.String,
			Latitude:  row.Latitude.Float64,
			Longitude: row.Longitude.Float64,
		}
	}

	return result
}

func rowsToPhotos(rows []*photoRow) []*models.Photo {
	result := slices.Map(rows, func(row *photoRow, index int) *models.Photo {
		return rowToPhoto(*row)
	})

	if result == nil {
		return []*models.Photo{}
	}

	return result
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
