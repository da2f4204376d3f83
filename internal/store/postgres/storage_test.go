package postgres

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
)

var orderCols = []string{
	"id", "order_number", "customer_name", "customer_email", "customer_avatar",
	"order_date", "status", "total_amount", "payment_status", "created_at", "updated_at",
}

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &Storage{db: mock, logger: logger}, mock
}

func sampleRow(mock pgxmockv3.PgxPoolIface, id, number string) *pgxmockv3.Rows {
	now := time.Now().UTC()
	return mock.NewRows(orderCols).AddRow(
		id, number, "Ada Lovelace", "ada@example.com", (*string)(nil),
		now, "pending", decimal.NewFromFloat(120.50), "unpaid", now, now,
	)
}

func TestInitSchemaRunsAllStatements(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_status").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_payment").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_created").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))

	require.NoError(t, storage.initSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilterAndPagination(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE payment_status = 'unpaid'`)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(14))
	mock.ExpectQuery(`SELECT .* FROM orders WHERE payment_status = 'unpaid' ORDER BY created_at DESC`).
		WithArgs(9, 9).
		WillReturnRows(sampleRow(mock, "ord-1", "#ORD1001"))

	orders, total, err := storage.List(context.Background(), "incomplete", 2, 9)
	require.NoError(t, err)
	require.Equal(t, 14, total)
	require.Len(t, orders, 1)
	require.Equal(t, "#ORD1001", orders[0].Number)
	require.Equal(t, "unpaid", orders[0].PaymentStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllSkipsWhereClause(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM orders ORDER BY created_at DESC`).
		WithArgs(9, 0).
		WillReturnRows(mock.NewRows(orderCols))

	orders, total, err := storage.List(context.Background(), "all", 1, 9)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingOrderIsNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT .* FROM orders WHERE id=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCreateAllocatesSequentialNumber(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT nextval('order_number_seq')`)).
		WillReturnRows(mock.NewRows([]string{"nextval"}).AddRow(int64(1042)))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(
			pgxmockv3.AnyArg(), "#ORD1042", "Ada Lovelace", "ada@example.com", (*string)(nil),
			pgxmockv3.AnyArg(), "pending", decimal.NewFromFloat(99.90), "unpaid",
		).
		WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	order, err := storage.Create(context.Background(), OrderInput{
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Status:        "pending",
		TotalAmount:   decimal.NewFromFloat(99.90),
		PaymentStatus: "unpaid",
	})
	require.NoError(t, err)
	require.Equal(t, "#ORD1042", order.Number)
	require.NotEmpty(t, order.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingOrderIsNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`UPDATE orders SET`).
		WithArgs("Name", "mail@example.com", (*string)(nil), (*time.Time)(nil),
			"completed", decimal.Zero, "paid", "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Update(context.Background(), "missing", OrderInput{
		CustomerName:  "Name",
		CustomerEmail: "mail@example.com",
		Status:        "completed",
		TotalAmount:   decimal.Zero,
		PaymentStatus: "paid",
	})
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestDeleteMissingOrderIsNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id=$1`)).
		WithArgs("missing").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))

	err := storage.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestBulkDeleteReportsDeletedCount(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id = ANY($1)`)).
		WithArgs([]string{"a", "b", "ghost"}).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 2))

	count, err := storage.BulkDelete(context.Background(), []string{"a", "b", "ghost"})
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestBulkUpdateStatusSkipsMissingIDs(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE orders SET status=\$1`).
		WithArgs("completed", []string{"a", "ghost"}).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	count, err := storage.BulkUpdateStatus(context.Background(), []string{"a", "ghost"}, "completed")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestBulkDuplicateCreatesFreshRows(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM orders WHERE id = ANY\(\$1\)`).
		WithArgs([]string{"ord-1"}).
		WillReturnRows(sampleRow(mock, "ord-1", "#ORD1001"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT nextval('order_number_seq')`)).
		WillReturnRows(mock.NewRows([]string{"nextval"}).AddRow(int64(1002)))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(
			pgxmockv3.AnyArg(), "#ORD1002", "Ada Lovelace", "ada@example.com", (*string)(nil),
			pgxmockv3.AnyArg(), "pending", decimal.NewFromFloat(120.50), "unpaid",
		).
		WillReturnRows(mock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	duplicates, err := storage.BulkDuplicate(context.Background(), []string{"ord-1"})
	require.NoError(t, err)
	require.Len(t, duplicates, 1)
	require.Equal(t, "#ORD1002", duplicates[0].Number)
	require.NotEqual(t, "ord-1", duplicates[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsAggregates(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT\s+COUNT`).
		WillReturnRows(mock.NewRows([]string{"month", "pending", "shipped", "refunded"}).
			AddRow(45, 5, 33, 7))

	stats, err := storage.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 45, stats.OrdersThisMonth)
	require.Equal(t, 5, stats.PendingCount)
	require.Equal(t, 33, stats.ShippedCount)
	require.Equal(t, 7, stats.RefundedCount)
}
