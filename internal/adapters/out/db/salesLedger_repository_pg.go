// internal/adapters/out/db/salesLedger_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"atelier/internal/application/usecase"
)

// SalesLedgerRepositoryPG persists paid orders into the sales_ledger
// table for relational reporting. The document store stays the source
// of truth; rows here are append-only.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS sales_ledger (
//	    order_id        TEXT PRIMARY KEY,
//	    order_number    TEXT NOT NULL,
//	    user_id         TEXT NOT NULL,
//	    total           BIGINT NOT NULL,
//	    payment_method  TEXT NOT NULL,
//	    paid_at         TIMESTAMPTZ NOT NULL
//	);
type SalesLedgerRepositoryPG struct {
	DB *sql.DB
}

func NewSalesLedgerRepositoryPG(db *sql.DB) *SalesLedgerRepositoryPG {
	return &SalesLedgerRepositoryPG{DB: db}
}

// ========================
// SalesLedger impl
// ========================

func (r *SalesLedgerRepositoryPG) Record(ctx context.Context, e usecase.SaleEntry) error {
	if r.DB == nil {
		return errors.New("db: connection is nil")
	}

	const q = `
INSERT INTO sales_ledger (order_id, order_number, user_id, total, payment_method, paid_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (order_id) DO NOTHING`

	_, err := r.DB.ExecContext(ctx, q,
		strings.TrimSpace(e.OrderID),
		strings.TrimSpace(e.OrderNumber),
		strings.TrimSpace(e.UserID),
		e.Total,
		strings.TrimSpace(e.PaymentMethod),
		e.PaidAt.UTC(),
	)
	return err
}

func (r *SalesLedgerRepositoryPG) Summary(ctx context.Context, from, to time.Time) (usecase.LedgerSummary, error) {
	if r.DB == nil {
		return usecase.LedgerSummary{}, errors.New("db: connection is nil")
	}

	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if !from.IsZero() {
		args = append(args, from.UTC())
		where = append(where, "paid_at >= $1")
	}
	if !to.IsZero() {
		args = append(args, to.UTC())
		if len(args) == 1 {
			where = append(where, "paid_at < $1")
		} else {
			where = append(where, "paid_at < $2")
		}
	}

	q := "SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales_ledger"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	var s usecase.LedgerSummary
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&s.Sales, &s.Revenue); err != nil {
		return usecase.LedgerSummary{}, err
	}
	return s, nil
}

// EnsureSchema creates the ledger table when missing. Called once at
// startup after the connection is established.
func (r *SalesLedgerRepositoryPG) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("db: connection is nil")
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS sales_ledger (
    order_id        TEXT PRIMARY KEY,
    order_number    TEXT NOT NULL,
    user_id         TEXT NOT NULL,
    total           BIGINT NOT NULL,
    payment_method  TEXT NOT NULL,
    paid_at         TIMESTAMPTZ NOT NULL
)`

	_, err := r.DB.ExecContext(ctx, ddl)
	return err
}
