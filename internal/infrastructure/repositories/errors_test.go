package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	domainerrors "rimmarsa.backend/internal/domain/errors"
)

func TestMapUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"pgx promo", &pgconn.PgError{Code: "23505", ConstraintName: "vendors_promo_code_key"}, domainerrors.ErrPromoCodeTaken},
		{"pgx phone", &pgconn.PgError{Code: "23505", ConstraintName: "vendors_phone_key"}, domainerrors.ErrPhoneTaken},
		{"pq promo", &pq.Error{Code: "23505", Constraint: "vendors_promo_code_key"}, domainerrors.ErrPromoCodeTaken},
		{"pq pending phone", &pq.Error{Code: "23505", Constraint: "vendor_requests_pending_phone_key"}, domainerrors.ErrPhoneTaken},
		{"sqlite promo", errors.New("UNIQUE constraint failed: vendors.promo_code"), domainerrors.ErrPromoCodeTaken},
		{"gorm translated", fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey), domainerrors.ErrUniqueViolation},
		{"other unique", &pgconn.PgError{Code: "23505", ConstraintName: "upload_tokens_token_key"}, domainerrors.ErrUniqueViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapUniqueViolation(tc.err), tc.want)
		})
	}

	plain := errors.New("connection reset")
	assert.Same(t, plain, mapUniqueViolation(plain))
	assert.NoError(t, mapUniqueViolation(nil))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "vendors_region_id_fkey"}
	assert.Same(t, error(fk), mapUniqueViolation(fk))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound), domainerrors.ErrNotFound)
	other := errors.New("boom")
	assert.Same(t, other, notFound(other))
}
