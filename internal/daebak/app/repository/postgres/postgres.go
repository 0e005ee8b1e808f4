package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/money"
	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/order"
	"github.com/lib/pq"
)

const defaultLimit = 100

type Config struct {
	ConnDB string
}

type Postgres struct {
	cfg *Config
	db  *sql.DB
}

func New(cfg Config) *Postgres       { return &Postgres{cfg: &cfg} }
func (store *Postgres) Stop() error  { return store.db.Close() }
func (store *Postgres) Ping() error  { return store.db.Ping() }
func (store *Postgres) Name() string { return "postgres" }

func (store *Postgres) Start() error {
	if store.cfg.ConnDB == "" {
		return errors.New("connDB no set")
	}

	db, err := sql.Open("postgres", store.cfg.ConnDB)
	if err != nil {
		return err
	}

	store.db = db

	if err := store.Ping(); err != nil {
		return err
	}

	return store.createTable()
}

func (store *Postgres) createTable() error {
	createTablesSQL := `
CREATE TABLE IF NOT EXISTS receipt (
	order_id varchar(100) NOT NULL,
	order_number varchar(64) NOT NULL,
	session_id varchar(100) NOT NULL,
	grand_total bigint NOT NULL,
	preview_total bigint NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (order_id)
);

CREATE INDEX IF NOT EXISTS receipt_session_idx ON receipt (session_id, created_at DESC);`

	ctx := context.Background()
	if _, err := store.db.ExecContext(ctx, createTablesSQL); err != nil {
		return err
	}

	return nil
}

// SaveReceipt records a checkout. Saving the same order twice keeps the first record.
func (store *Postgres) SaveReceipt(ctx context.Context, r order.Receipt) error {
	insertStmt := `
INSERT INTO receipt (order_id, order_number, session_id, grand_total, preview_total, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT(order_id) DO NOTHING;`

	if _, err := store.db.ExecContext(ctx, insertStmt,
		r.OrderID,
		r.OrderNumber,
		r.SessionID,
		r.GrandTotal.Int64(),
		r.PreviewTotal.Int64(),
		r.CreatedAt,
	); err != nil {
		return fmt.Errorf("save receipt [%s]: %w", r.OrderNumber, err)
	}

	return nil
}

func (store *Postgres) Receipts(ctx context.Context, filter order.ReceiptFilter) ([]order.Receipt, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var sessions any
	if len(filter.SessionIDs) > 0 {
		sessions = pq.Array(filter.SessionIDs)
	}

	selectStmt := `
SELECT order_id, order_number, session_id, grand_total, preview_total, created_at
FROM receipt
WHERE $1::text[] IS NULL OR session_id = ANY($1)
ORDER BY created_at DESC
LIMIT $2;`

	rows, err := store.db.QueryContext(ctx, selectStmt, sessions, limit)
	if err != nil {
		return nil, fmt.Errorf("select receipts: %w", err)
	}
	defer rows.Close()

	out := make([]order.Receipt, 0)

	for rows.Next() {
		var (
			r           order.Receipt
			grand, prev int64
		)

		if err := rows.Scan(&r.OrderID, &r.OrderNumber, &r.SessionID, &grand, &prev, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}

		r.GrandTotal = money.Won(grand)
		r.PreviewTotal = money.Won(prev)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows receipts: %w", err)
	}

	return out, nil
}
