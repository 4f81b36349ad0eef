package repository

import (
	"context"
	"fmt"

	"pet-rental/internal/data/entity"
	"pet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrPetRowMissing is returned by guarded mutators when the pet row vanished
// between the service-level lookup and the transaction.
var ErrPetRowMissing = fmt.Errorf("pet row not found")

// ErrBookingRowMissing is its counterpart for the booking row.
var ErrBookingRowMissing = fmt.Errorf("booking row not found")

// InvalidTransitionError is returned by UpdateStatusGuarded when the status
// of the locked row no longer permits the requested transition. The service
// checks legality before calling, but a concurrent write can change the row
// in between; only the in-transaction check is authoritative.
type InvalidTransitionError struct {
	From entity.BookingStatus
	To   entity.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking status cannot change from %s to %s", e.From, e.To)
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus) (int64, error)

	// Occupancy queries. Results are never capped: conflict detection must
	// see the complete overlapping set.
	FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error)
	FindForUserSchedule(ctx context.Context, userID uuid.UUID, rng entity.DateRange, asOwner *bool) ([]*entity.Booking, error)

	// Guarded mutators. Each runs inside one transaction that locks the
	// pet row, re-checks conflicts and only then commits the write, closing
	// the check-then-act race between concurrent requests.
	CreateGuarded(ctx context.Context, booking *entity.Booking) (*Conflicts, error)
	UpdateStatusGuarded(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*Conflicts, error)

	SumCompletedForOwner(ctx context.Context, ownerID uuid.UUID) (total, fees float64, count int64, err error)
	CountPetActive(ctx context.Context, petID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, pet_id, owner_id, renter_id, start_date, end_date, total_days,
	       daily_rate, total_amount, service_fee, grand_total, status, payment_status,
	       message, special_requests, pickup_time, dropoff_time, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.PetID,
		&b.OwnerID,
		&b.RenterID,
		&b.DateRange.StartDate,
		&b.DateRange.EndDate,
		&b.TotalDays,
		&b.DailyRate,
		&b.TotalAmount,
		&b.ServiceFee,
		&b.GrandTotal,
		&b.Status,
		&b.PaymentStatus,
		&b.Message,
		&b.SpecialRequests,
		&b.PickupTime,
		&b.DropoffTime,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + userRoleClause(asOwner)
	args := []any{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user %s: %w", userID.String(), err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID, asOwner *bool, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ` + userRoleClause(asOwner)
	args := []any{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user %s: %w", userID.String(), err)
	}

	return count, nil
}

// userRoleClause narrows a booking query to the rows where the user acts as
// owner, renter, or either.
func userRoleClause(asOwner *bool) string {
	switch {
	case asOwner == nil:
		return `(owner_id = $1 OR renter_id = $1)`
	case *asOwner:
		return `owner_id = $1`
	default:
		return `renter_id = $1`
	}
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error) {
	bookings, err := findOverlappingBookings(ctx, r.db, petID, rng, excludeID)
	if err != nil {
		r.log.Error("Failed to find overlapping bookings",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
			zap.String("range", rng.String()),
		)
		return nil, err
	}
	return bookings, nil
}

// findOverlappingBookings returns every active booking whose closed date
// range shares at least one day with rng. No LIMIT here, on purpose.
func findOverlappingBookings(ctx context.Context, q database.Querier, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE pet_id = $1
		  AND status IN ('pending', 'accepted', 'in_progress')
		  AND start_date <= $2
		  AND end_date >= $3
		  AND id != $4
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, petID, rng.EndDate, rng.StartDate, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings for pet %s: %w", petID.String(), err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) FindForUserSchedule(ctx context.Context, userID uuid.UUID, rng entity.DateRange, asOwner *bool) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ` + userRoleClause(asOwner) + `
		  AND start_date <= $2
		  AND end_date >= $3
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, userID, rng.EndDate, rng.StartDate)
	if err != nil {
		r.log.Error("Failed to find schedule bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find schedule bookings for user %s: %w", userID.String(), err)
	}

	return collectBookings(rows)
}

func (r *bookingRepository) CreateGuarded(ctx context.Context, booking *entity.Booking) (*Conflicts, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockPetRow(ctx, tx, booking.PetID); err != nil {
		return nil, err
	}

	conflicts, err := conflictsWithin(ctx, tx, booking.PetID, booking.DateRange, uuid.Nil, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if conflicts.Any() {
		return conflicts, nil
	}

	query := `
		INSERT INTO bookings (id, pet_id, owner_id, renter_id, start_date, end_date,
		                      total_days, daily_rate, total_amount, service_fee, grand_total,
		                      status, payment_status, message, special_requests, pickup_time,
		                      dropoff_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.PetID,
		booking.OwnerID,
		booking.RenterID,
		booking.DateRange.StartDate,
		booking.DateRange.EndDate,
		booking.TotalDays,
		booking.DailyRate,
		booking.TotalAmount,
		booking.ServiceFee,
		booking.GrandTotal,
		booking.Status,
		booking.PaymentStatus,
		booking.Message,
		booking.SpecialRequests,
		booking.PickupTime,
		booking.DropoffTime,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("pet_id", booking.PetID.String()),
			zap.String("renter_id", booking.RenterID.String()),
		)
		return nil, fmt.Errorf("create booking for pet %s: %w", booking.PetID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create booking: %w", err)
	}

	return nil, nil
}

func (r *bookingRepository) UpdateStatusGuarded(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) (*Conflicts, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin status update tx: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID))
	if err == pgx.ErrNoRows {
		return nil, ErrBookingRowMissing
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking %s: %w", bookingID.String(), err)
	}

	// The state machine is re-checked against the locked row, not the copy
	// the service read earlier. A cancel that committed in between must not
	// be overridden by a stale accept.
	if !booking.CanTransition(status) {
		return nil, &InvalidTransitionError{From: booking.Status, To: status}
	}

	// Transitions into an occupying status re-verify the range against
	// every other active booking and every block before committing.
	if status.IsActive() {
		if err := lockPetRow(ctx, tx, booking.PetID); err != nil {
			return nil, err
		}

		conflicts, err := conflictsWithin(ctx, tx, booking.PetID, booking.DateRange, bookingID, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if conflicts.Any() {
			return conflicts, nil
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}

	return nil, nil
}

func (r *bookingRepository) SumCompletedForOwner(ctx context.Context, ownerID uuid.UUID) (float64, float64, int64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(service_fee), 0), COUNT(*)
		FROM bookings
		WHERE owner_id = $1 AND status = 'completed' AND payment_status = 'paid'
	`

	var total, fees float64
	var count int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&total, &fees, &count); err != nil {
		r.log.Error("Failed to sum completed bookings",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, 0, 0, fmt.Errorf("sum completed bookings for owner %s: %w", ownerID.String(), err)
	}

	return total, fees, count, nil
}

func (r *bookingRepository) CountPetActive(ctx context.Context, petID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE pet_id = $1 AND status IN ('pending', 'accepted', 'in_progress')
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, petID).Scan(&count); err != nil {
		r.log.Error("Failed to count active bookings",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
		)
		return 0, fmt.Errorf("count active bookings for pet %s: %w", petID.String(), err)
	}

	return count, nil
}

// lockPetRow serializes availability-affecting writes for one pet. Every
// guarded mutator takes this lock first so concurrent check-then-insert
// sequences cannot interleave.
func lockPetRow(ctx context.Context, q database.Querier, petID uuid.UUID) error {
	var id uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM pets WHERE id = $1 FOR UPDATE`, petID).Scan(&id)
	if err == pgx.ErrNoRows {
		return ErrPetRowMissing
	}
	if err != nil {
		return fmt.Errorf("lock pet %s: %w", petID.String(), err)
	}
	return nil
}
