package leads

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrorFields returns structured log fields for a failed statement. The
// SQLSTATE class tells an operator whether re-uploading can help.
func pgErrorFields(err error) []interface{} {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return []interface{}{"retryable", isRetryable(err)}
	}
	fields := []interface{}{
		"sqlstate", pgErr.Code,
		"retryable", isRetryable(err),
	}
	if pgErr.ConstraintName != "" {
		fields = append(fields, "constraint", pgErr.ConstraintName)
	}
	if pgErr.ColumnName != "" {
		fields = append(fields, "column", pgErr.ColumnName)
	}
	return fields
}

func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "40001", "40P01", "55P03":
			return true // serialization/deadlock/lock_not_available
		}
		// connection exceptions
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}
