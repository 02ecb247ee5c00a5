package wallet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

// Postgres implementa o livro-razão de saldos sobre a tabela users.
// Toda mutação de saldo passa por aqui: incremento/decremento in-place
// (nunca read-modify-write na aplicação) + linha de auditoria no ledger.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Credit soma amountCents ao saldo do usuário.
// Incremento atômico no banco; atualizações concorrentes não se perdem.
func (p *Postgres) Credit(ctx context.Context, userID int64, amountCents int64, ref string) error {
	if amountCents <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amountCents)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET total_balance_cents = total_balance_cents + $1 WHERE id=$2`,
		amountCents, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_ledger(id, user_id, operation_type, amount_cents, description)
		 VALUES($1,$2,'CREDIT',$3,$4)`,
		uuid.NewString(), userID, amountCents, ref); err != nil {
		return err
	}

	return tx.Commit()
}

// Debit subtrai amountCents do saldo, exigindo saldo suficiente.
// Lock pessimista na linha do usuário elimina a janela check-then-act.
func (p *Postgres) Debit(ctx context.Context, userID int64, amountCents int64, ref string) error {
	if amountCents <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amountCents)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx,
		`SELECT total_balance_cents FROM users WHERE id=$1 FOR UPDATE`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return domain.ErrUserNotFound
	} else if err != nil {
		return err
	}

	if balance < amountCents {
		return domain.ErrInsufficientBalance
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET total_balance_cents = total_balance_cents - $1 WHERE id=$2`,
		amountCents, userID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_ledger(id, user_id, operation_type, amount_cents, description)
		 VALUES($1,$2,'DEBIT',$3,$4)`,
		uuid.NewString(), userID, amountCents, ref); err != nil {
		return err
	}

	return tx.Commit()
}

// Balance retorna o saldo atual em centavos
func (p *Postgres) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := p.db.QueryRowContext(ctx,
		`SELECT total_balance_cents FROM users WHERE id=$1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, domain.ErrUserNotFound
	}
	return balance, err
}
