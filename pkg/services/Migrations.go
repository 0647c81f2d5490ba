package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rfberaldo/sqlz"
)

/*
MigrateDatabase runs every "commit*" SQL script in migrationDir, in
file name order. Scripts must be safe to run more than once.
*/
func MigrateDatabase(db *sqlz.DB, migrationDir string) error {
	var (
		err   error
		dirs  []os.DirEntry
		b     []byte
		names []string
	)

	if dirs, err = os.ReadDir(migrationDir); err != nil {
		return fmt.Errorf("error reading migration directory %s: %w", migrationDir, err)
	}

	for _, d := range dirs {
		if d.IsDir() || !strings.HasPrefix(d.Name(), "commit") {
			continue
		}

		names = append(names, d.Name())
	}

	sort.Strings(names)

	for _, name := range names {
		if b, err = os.ReadFile(filepath.Join(migrationDir, name)); err != nil {
			return fmt.Errorf("error reading migration %s: %w", name, err)
		}

		if err = runSqlScript(db, b); err != nil {
			if !isIgnorableError(err) {
				return fmt.Errorf("error running migration %s: %w", name, err)
			}
		}
	}

	return nil
}

func runSqlScript(db *sqlz.DB, b []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(b))
	return err
}

func isIgnorableError(err error) bool {
	return strings.Contains(err.Error(), "duplicate column")
}
