package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrInvalidLoanRequest is returned when the database rejects a row on a check constraint.
var ErrInvalidLoanRequest = errors.New("invalid loan request")

type PostgresStore struct {
	DB *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

func (p *PostgresStore) Ping(ctx context.Context) error { return p.DB.PingContext(ctx) }

func (p *PostgresStore) Close() error { return p.DB.Close() }

// Migrate applies the embedded migrations that have not run yet, in file name order.
func (p *PostgresStore) Migrate(ctx context.Context) ([]string, error) {
	if _, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		var exists bool
		if err := p.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name).
			Scan(&exists); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if exists {
			continue
		}

		stmt, err := migrationsFS.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := p.DB.BeginTx(ctx, nil)
		if err != nil {
			return applied, err
		}
		if _, err := tx.ExecContext(ctx, string(stmt)); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

// Loan requests Repo

const loanRequestColumns = `id, cpf, instituicao, modalidade, cod_modalidade, valor, juros_mes, parcelas, created_at, updated_at`

func (p *PostgresStore) Create(ctx context.Context, lr LoanRequest) (LoanRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := p.DB.QueryRowContext(ctx, `
		INSERT INTO solicitacoes (cpf, instituicao, modalidade, cod_modalidade, valor, juros_mes, parcelas)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+loanRequestColumns,
		lr.CPF, lr.Institution, lr.Modality, lr.ModalityCode, lr.Amount, lr.MonthlyRate, lr.Installments)

	out, err := scanLoanRequest(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23514" || pgErr.Code == "22003") { // check_violation, numeric_value_out_of_range
			return LoanRequest{}, fmt.Errorf("%w: %s", ErrInvalidLoanRequest, pgErr.Message)
		}
		return LoanRequest{}, err
	}
	return out, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]LoanRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT `+loanRequestColumns+`
		FROM solicitacoes
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectLoanRequests(rows)
}

func (p *PostgresStore) ListByCPF(ctx context.Context, cpf string) ([]LoanRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT `+loanRequestColumns+`
		FROM solicitacoes
		WHERE cpf = $1
		ORDER BY created_at DESC, id DESC`, cpf)
	if err != nil {
		return nil, err
	}
	return collectLoanRequests(rows)
}

func (p *PostgresStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := p.DB.ExecContext(ctx, `DELETE FROM solicitacoes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLoanRequestNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLoanRequest(s scanner) (LoanRequest, error) {
	var lr LoanRequest
	err := s.Scan(&lr.ID, &lr.CPF, &lr.Institution, &lr.Modality, &lr.ModalityCode,
		&lr.Amount, &lr.MonthlyRate, &lr.Installments, &lr.CreatedAt, &lr.UpdatedAt)
	return lr, err
}

func collectLoanRequests(rows *sql.Rows) ([]LoanRequest, error) {
	defer rows.Close()

	out := []LoanRequest{}
	for rows.Next() {
		lr, err := scanLoanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}
