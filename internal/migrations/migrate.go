// Package migrations creates the tables of the fixture models
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/modelcheck/logger"
)

// Migration create and drop a single table
type Migration struct {
	Name string
	Up   string
	// Down defaults to DROP TABLE of Name
	Down string
}

// Execer *sql.DB, *sql.Tx and *sql.Conn satisfy it
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Tables all fixture migrations, in creation order
func Tables() []Migration {
	return append([]Migration(nil), tables...)
}

func MigrateAll(ctx context.Context, db Execer, log logger.Interface) error {
	log.Info(ctx, "running %d migrations", len(tables))
	for _, m := range tables {
		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Name, err)
		}
	}
	log.Info(ctx, "migrations completed")
	return nil
}

func RollbackAll(ctx context.Context, db Execer, log logger.Interface) error {
	log.Info(ctx, "rolling back %d migrations", len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		m := tables[i]
		down := m.Down
		if down == "" {
			down = "DROP TABLE IF EXISTS `" + m.Name + "`"
		}
		if _, err := db.ExecContext(ctx, down); err != nil {
			return fmt.Errorf("rollback %s: %w", m.Name, err)
		}
	}
	log.Info(ctx, "rollback completed")
	return nil
}
