package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/board-game-reviews-api/internal/database"
	"github.com/lib/pq"
)

// copyRows inserts rows using PostgreSQL COPY inside a single transaction.
// When serial names an id column, its sequence is moved past the copied ids.
func copyRows(ctx context.Context, db *database.DB, table string, columns []string, rows [][]any, serial string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	start := time.Now()
	inserted, err := copyInTx(ctx, db, table, columns, rows, serial)
	observe("copy", table, start, err)
	if err != nil {
		return 0, fmt.Errorf("batch insert %s: %w", table, err)
	}
	return inserted, nil
}

func copyInTx(ctx context.Context, db *database.DB, table string, columns []string, rows [][]any, serial string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, err
		}
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if serial != "" {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', '%s'), (SELECT MAX(%s) FROM %s))",
			table, serial, pq.QuoteIdentifier(serial), pq.QuoteIdentifier(table),
		)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
