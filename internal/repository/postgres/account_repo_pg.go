package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const accountColumns = `id, email, full_name, password_hash, password_salt, is_staff, created_at`

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, email string, fullName *string, passwordHash, passwordSalt []byte, isStaff bool) (*domain.Account, error) {
	query := `
		INSERT INTO account (email, full_name, password_hash, password_salt, is_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns

	var account domain.Account
	err := r.db.QueryRowxContext(ctx, query, strings.ToLower(strings.TrimSpace(email)), nullString(fullName), passwordHash, passwordSalt, isStaff).StructScan(&account)
	if err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT ` + accountColumns + ` FROM account WHERE email = $1`
	if err := r.db.GetContext(ctx, &account, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.GetContext(ctx, &account, `SELECT `+accountColumns+` FROM account WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &account, nil
}
