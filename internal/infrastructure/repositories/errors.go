package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "rimmarsa.backend/internal/domain/errors"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique constraint failure and returns the
// constraint name or driver message identifying the column.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName + " " + pgErr.Detail, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return pqErr.Constraint + " " + pqErr.Detail, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return err.Error(), true
	}

	// sqlite: "UNIQUE constraint failed: vendors.promo_code"
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}

// IsUniqueViolation reports whether err comes from a unique index on any supported driver
func IsUniqueViolation(err error) bool {
	_, ok := uniqueViolation(err)
	return ok
}

// mapUniqueViolation converts unique violations on promo_code and phone columns to
// domain errors and leaves other errors untouched.
func mapUniqueViolation(err error) error {
	detail, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(detail, "promo_code"):
		return fmt.Errorf("%w: %v", domainerrors.ErrPromoCodeTaken, err)
	case strings.Contains(detail, "phone"):
		return fmt.Errorf("%w: %v", domainerrors.ErrPhoneTaken, err)
	default:
		return fmt.Errorf("%w: %v", domainerrors.ErrUniqueViolation, err)
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}
