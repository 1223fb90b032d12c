package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

type AccountService struct {
	accounts ports.AccountRepository
	jwt      *util.JWTManager
}

func NewAccountService(accounts ports.AccountRepository, jwt *util.JWTManager) *AccountService {
	return &AccountService{accounts: accounts, jwt: jwt}
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !util.VerifyPassword(password, account.PasswordSalt, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(account.ID, account.Email, account.IsStaff)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// Authenticate resolves a bearer token to the current account row.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateStaff registers an account allowed to use the admin API.
func (s *AccountService) CreateStaff(ctx context.Context, email, password string, fullName *string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var problems []string
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		problems = append(problems, "email is invalid")
	}
	if err := util.ValidatePassword(password); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.Create(ctx, email, trimPtr(fullName), hash, salt, true)
	if errors.Is(err, ports.ErrUniqueViolation) {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	return account, err
}
