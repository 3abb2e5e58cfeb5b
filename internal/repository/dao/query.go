package dao

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation matches a duplicate key on the given constraint or column
// for both postgres and sqlite.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			(constraint == "" || strings.Contains(pgErr.ConstraintName, constraint) || strings.Contains(pgErr.Message, constraint))
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite: "UNIQUE constraint failed: users.email"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type groupCount struct {
	GroupKey uuid.UUID
	N        int64
}

// countGrouped runs COUNT(*) over q grouped by column.
func countGrouped(q *gorm.DB, column string) (map[uuid.UUID]int64, error) {
	var rows []groupCount
	if err := q.Select(column + " AS group_key, COUNT(*) AS n").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupKey] = r.N
	}

	return counts, nil
}
