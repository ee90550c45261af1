package store

import (
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// The repository surface collapses every failure into a boolean, so the
// underlying cause only survives here, on the diagnostic stream.

func failureCause(err error) string {
	if errors.Is(err, sql.ErrNoRows) {
		return "not_found"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique"),
		strings.Contains(msg, "foreign key"),
		strings.Contains(msg, "check constraint"),
		strings.Contains(msg, "constraint failed"):
		return "constraint"
	default:
		return "connectivity"
	}
}

func logQueryError(op string, err error) {
	zap.L().Error(op, zap.String("cause", failureCause(err)), zap.Error(err))
}
