package repository

import (
	"context"
	"testing"

	"pet-rental/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// capturingQuerier records the SQL and arguments of each Query call and
// hands back an empty result set.
type capturingQuerier struct {
	sql  string
	args []any
}

func (q *capturingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = sql
	q.args = args
	return emptyRows{}, nil
}

func (q *capturingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return noRow{}
}

func (q *capturingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = sql
	q.args = args
	return pgconn.CommandTag{}, nil
}

func (q *capturingQuerier) Begin(ctx context.Context) (pgx.Tx, error) { return nil, pgx.ErrTxClosed }
func (q *capturingQuerier) Ping(ctx context.Context) error            { return nil }
func (q *capturingQuerier) Close()                                    {}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(dest ...any) error                       { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

type noRow struct{}

func (noRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func TestFindOverlappingBookings_ActiveStatusFilter(t *testing.T) {
	petID := uuid.New()
	excludeID := uuid.New()
	rng, err := entity.ParseDateRange("2026-03-10", "2026-03-14")
	require.NoError(t, err)

	q := &capturingQuerier{}
	_, err = findOverlappingBookings(context.Background(), q, petID, rng, excludeID)
	require.NoError(t, err)

	// Only calendar-occupying statuses may count as overlap.
	for _, status := range entity.ActiveBookingStatuses {
		assert.Contains(t, q.sql, "'"+string(status)+"'")
	}
	assert.NotContains(t, q.sql, string(entity.BookingStatusCancelled))
	assert.NotContains(t, q.sql, string(entity.BookingStatusRejected))
	assert.NotContains(t, q.sql, string(entity.BookingStatusCompleted))

	require.Len(t, q.args, 4)
	assert.Equal(t, petID, q.args[0])
	assert.Equal(t, rng.EndDate, q.args[1])
	assert.Equal(t, rng.StartDate, q.args[2])
	assert.Equal(t, excludeID, q.args[3])
}

func TestCountPetActive_ActiveStatusFilter(t *testing.T) {
	petID := uuid.New()

	q := &capturingQuerier{}
	repo := &bookingRepository{db: q, log: zap.NewNop()}

	_, err := repo.CountPetActive(context.Background(), petID)
	// The stub row scans to no rows; the query text is what matters here.
	require.Error(t, err)

	for _, status := range entity.ActiveBookingStatuses {
		assert.Contains(t, q.sql, "'"+string(status)+"'")
	}
	assert.Equal(t, []any{petID}, q.args)
}
