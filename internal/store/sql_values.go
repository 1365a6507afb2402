package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/models"
)

// amountValue converts an optional amount into a query argument.
func amountValue(a *models.Amount) any {
	if a == nil {
		return nil
	}
	return float64(*a)
}

// dateValue converts an optional date into a "YYYY-MM-DD" query argument.
func dateValue(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func amountFromNull(n sql.NullFloat64) *models.Amount {
	if !n.Valid {
		return nil
	}
	a := models.Amount(n.Float64)
	return &a
}

// deleteByID deletes one row of table and fails with [ErrNotFound] when no
// row matched.
func deleteByID(ctx context.Context, db *DB, table string, id int64, fn string) error {
	log := logger.FromContext(ctx)

	query, args, err := db.builder.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Int64("id", id).Msg("error deleting row")
		return db.translate(err, ErrExecutingStatement)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
