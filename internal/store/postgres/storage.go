package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
)

// DB is the subset of pgxpool.Pool the repository uses. Tests substitute
// a pgxmock pool through it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Order is a stored order row. Status and payment status are kept in
// their lowercase wire form.
type Order struct {
	ID             string
	Number         string
	CustomerName   string
	CustomerEmail  string
	CustomerAvatar *string
	OrderDate      time.Time
	Status         string
	TotalAmount    decimal.Decimal
	PaymentStatus  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderInput carries the mutable fields of an order.
type OrderInput struct {
	CustomerName   string
	CustomerEmail  string
	CustomerAvatar *string
	OrderDate      *time.Time
	Status         string
	TotalAmount    decimal.Decimal
	PaymentStatus  string
}

// Stats are the dashboard aggregates.
type Stats struct {
	OrdersThisMonth int
	PendingCount    int
	ShippedCount    int
	RefundedCount   int
}

// Storage is the order repository backed by PostgreSQL.
type Storage struct {
	db     DB
	logger *slog.Logger
}

// New connects to the database and initializes the schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{db: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL DEFAULT '',
            customer_avatar TEXT,
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            status TEXT NOT NULL DEFAULT 'pending',
            total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            payment_status TEXT NOT NULL DEFAULT 'unpaid',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1001`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment ON orders(payment_status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_avatar,
                      order_date, status, total_amount, payment_status, created_at, updated_at`

// filterClause translates a view filter into a WHERE condition. An empty
// or "all" filter matches everything; unknown filters are rejected by
// the handler before reaching the repository.
func filterClause(filter string) string {
	switch filter {
	case "incomplete":
		return `WHERE payment_status = 'unpaid'`
	case "overdue":
		return `WHERE status = 'pending' AND order_date < NOW() - INTERVAL '7 days'`
	case "ongoing":
		return `WHERE status = 'pending'`
	case "finished":
		return `WHERE status = 'completed'`
	default:
		return ``
	}
}

// List returns one page of orders, newest first, with the total count of
// rows matching the filter.
func (s *Storage) List(ctx context.Context, filter string, page, limit int) ([]Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	where := filterClause(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders %s`, where)
	if err := s.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		orderColumns, where)
	rows, err := s.db.Query(ctx, listQuery, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Get fetches one order by id.
func (s *Storage) Get(ctx context.Context, id string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	var o Order
	err := s.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CustomerAvatar,
		&o.OrderDate, &o.Status, &o.TotalAmount, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order, allocating its id and `#ORD<n>` number.
func (s *Storage) Create(ctx context.Context, in OrderInput) (*Order, error) {
	var seq int64
	if err := s.db.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	number := fmt.Sprintf("#ORD%d", seq)
	orderDate := time.Now().UTC()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	const query = `INSERT INTO orders
        (id, order_number, customer_name, customer_email, customer_avatar,
         order_date, status, total_amount, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`

	o := Order{
		ID:             id,
		Number:         number,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerAvatar: in.CustomerAvatar,
		OrderDate:      orderDate,
		Status:         in.Status,
		TotalAmount:    in.TotalAmount,
		PaymentStatus:  in.PaymentStatus,
	}
	err := s.db.QueryRow(ctx, query,
		id, number, in.CustomerName, in.CustomerEmail, in.CustomerAvatar,
		orderDate, in.Status, in.TotalAmount, in.PaymentStatus,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update replaces the mutable fields of an order.
func (s *Storage) Update(ctx context.Context, id string, in OrderInput) (*Order, error) {
	query := fmt.Sprintf(`UPDATE orders SET
            customer_name=$1, customer_email=$2, customer_avatar=$3,
            order_date=COALESCE($4, order_date), status=$5,
            total_amount=$6, payment_status=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING %s`, orderColumns)

	var o Order
	err := s.db.QueryRow(ctx, query,
		in.CustomerName, in.CustomerEmail, in.CustomerAvatar,
		in.OrderDate, in.Status, in.TotalAmount, in.PaymentStatus, id,
	).Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CustomerAvatar,
		&o.OrderDate, &o.Status, &o.TotalAmount, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Delete removes one order.
func (s *Storage) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// BulkDelete removes the given orders and reports how many existed.
func (s *Storage) BulkDelete(ctx context.Context, ids []string) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// BulkUpdateStatus sets the status on every existing id and reports the
// updated count. Missing ids are skipped, not errors.
func (s *Storage) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id = ANY($2)`, status, ids)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// BulkDuplicate copies the given orders under fresh ids and numbers. The
// copies land at the top of the list with their creation time.
func (s *Storage) BulkDuplicate(ctx context.Context, ids []string) ([]Order, error) {
	selectQuery := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ANY($1)`, orderColumns)

	var duplicates []Order
	err := s.withinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, ids)
		if err != nil {
			return err
		}
		originals, err := scanOrders(rows)
		if err != nil {
			return err
		}

		for _, src := range originals {
			var seq int64
			if err := tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
				return err
			}
			dup := src
			dup.ID = uuid.NewString()
			dup.Number = fmt.Sprintf("#ORD%d", seq)

			const insert = `INSERT INTO orders
                (id, order_number, customer_name, customer_email, customer_avatar,
                 order_date, status, total_amount, payment_status)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                RETURNING created_at, updated_at`
			if err := tx.QueryRow(ctx, insert,
				dup.ID, dup.Number, dup.CustomerName, dup.CustomerEmail, dup.CustomerAvatar,
				dup.OrderDate, dup.Status, dup.TotalAmount, dup.PaymentStatus,
			).Scan(&dup.CreatedAt, &dup.UpdatedAt); err != nil {
				return err
			}
			duplicates = append(duplicates, dup)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return duplicates, nil
}

// Stats computes the dashboard aggregates. An order counts as shipped
// when it is completed and paid.
func (s *Storage) Stats(ctx context.Context) (*Stats, error) {
	const query = `SELECT
        COUNT(*) FILTER (WHERE created_at >= date_trunc('month', NOW())),
        COUNT(*) FILTER (WHERE status = 'pending'),
        COUNT(*) FILTER (WHERE status = 'completed' AND payment_status = 'paid'),
        COUNT(*) FILTER (WHERE status = 'refunded')
        FROM orders`

	var stats Stats
	err := s.db.QueryRow(ctx, query).Scan(
		&stats.OrdersThisMonth, &stats.PendingCount, &stats.ShippedCount, &stats.RefundedCount,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.Ping(ctx)
}

func (s *Storage) withinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CustomerAvatar,
			&o.OrderDate, &o.Status, &o.TotalAmount, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
