package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quiz-player/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const statementSeparator = "\n/\n"

// MigrationFiles lists the *.up.sql files of dir in name order.
func MigrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// SplitStatements splits a migration file into statements. Oracle rejects
// several statements in one Exec, so files separate them with a line
// holding a single slash.
func SplitStatements(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var stmts []string
	for _, part := range strings.Split(content+"\n", statementSeparator) {
		stmt := strings.TrimSpace(part)
		stmt = strings.TrimSuffix(stmt, "/")
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// RunMigrations executes every up migration found in dir.
func RunMigrations(ctx context.Context, db *sqlx.DB, dir string) error {
	files, err := MigrationFiles(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}

		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", filepath.Base(file), err)
			}
		}

		logger.Get().Info("Executed migration", zap.String("file", filepath.Base(file)))
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("count", len(files)))
	return nil
}
