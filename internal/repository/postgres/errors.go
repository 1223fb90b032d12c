package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const uniqueViolationCode = "23505"

// translateError turns driver-level constraint failures into port errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return &ports.UniqueViolation{Constraint: pgErr.ConstraintName}
	}
	return err
}
