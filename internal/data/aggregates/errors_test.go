package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/smartmeal/smartmeal-backend/internal/domain/aggregates"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"nil", nil, ""},
		{"validation sentinel", ValidationError("bad input"), domainagg.CodeValidation},
		{"not found sentinel", NotFoundError("no row"), domainagg.CodeNotFound},
		{"conflict sentinel", ConflictError("busy"), domainagg.CodeConflict},
		{"gorm record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, domainagg.CodeConflict},
		{"context canceled", context.Canceled, domainagg.CodeRetryable},
		{"deadline exceeded", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"pg deadlock detected", &pgconn.PgError{Code: "40P01"}, domainagg.CodeRetryable},
		{"pg lock not available", &pgconn.PgError{Code: "55P03"}, domainagg.CodeRetryable},
		{"duplicate key text", errors.New("UNIQUE constraint failed: pantry_entry"), domainagg.CodeConflict},
		{"unknown", errors.New("disk on fire"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError("test.op", tc.err)
			if tc.err == nil {
				if mapped != nil {
					t.Fatalf("mapped nil error to %v", mapped)
				}
				return
			}
			if got := domainagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("code = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMapErrorPassesThroughAggregateErrors(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeValidation, "pantry.apply_delta", "negative quantity", nil)
	mapped := MapError("other.op", orig)
	if mapped != orig {
		t.Fatalf("aggregate error was rewrapped: %v", mapped)
	}
}
