package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/upb/taskhub/repositories"
)

const uniqueViolation = "23505"

// mapError translates driver errors into repository sentinels
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, repositories.ErrConflict, pqErr.Constraint)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// requireAffected turns a zero-row update or delete into ErrNotFound
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	return nil
}

func pageOrDefault(p repositories.Page) repositories.Page {
	switch {
	case p.Limit <= 0:
		p.Limit = repositories.DefaultPageLimit
	case p.Limit > repositories.MaxPageLimit:
		p.Limit = repositories.MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
