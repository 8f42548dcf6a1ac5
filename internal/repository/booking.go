package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/wb-go/wbf/dbpg"
)

const (
	bookingColumns = `id, user_name, user_phone, slot_id, amount, status, payment_status, payment_order_id,
	confirmed_at, whatsapp_notified, decision_reason, source, created_at, updated_at`

	activeSlotIndex = "bookings_active_slot_uniq"
)

type BookingRepository struct {
	conn
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{conn: newConn(db)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, user_name, user_phone, slot_id, amount, status, payment_status,
			                        payment_order_id, decision_reason, source, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.exec(ctx, query,
		b.ID, b.UserName, b.UserPhone, b.SlotID, b.Amount, b.Status, b.PaymentStatus,
		b.PaymentOrderID, b.DecisionReason, b.Source, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			if pgConstraint(err) == activeSlotIndex {
				return fmt.Errorf("%w: slot %s already has an active booking", domain.ErrSlotConflict, b.SlotID)
			}
			return fmt.Errorf("%w: booking %s already exists", domain.ErrValidation, b.ID)
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	row, err := r.queryRow(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) ListByPhone(ctx context.Context, phone string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE user_phone = $1
              ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("list bookings by phone: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, u domain.BookingUpdate) (*domain.Booking, error) {
	query := `UPDATE bookings
			  SET status = $2,
			      decision_reason = $3,
			      confirmed_at = COALESCE(confirmed_at, $4),
			      updated_at = now()
			  WHERE id = $1 AND status = ANY($5)
			  RETURNING ` + bookingColumns

	row, err := r.queryRow(ctx, query, u.ID, u.To, u.Reason, nullTime(u.ConfirmedAt), pq.Array(u.From))
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	current, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: booking %s is %s", domain.ErrStatusConflict, current.ID, current.Status)
}

func (r *BookingRepository) UpdatePaymentStatus(
	ctx context.Context,
	id string,
	from []domain.PaymentStatus,
	to domain.PaymentStatus,
) (*domain.Booking, error) {
	query := `UPDATE bookings
			  SET payment_status = $2, updated_at = now()
			  WHERE id = $1 AND payment_status = ANY($3)
			  RETURNING ` + bookingColumns

	row, err := r.queryRow(ctx, query, id, to, pq.Array(from))
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: payment of booking %s is %s", domain.ErrStatusConflict, current.ID, current.PaymentStatus)
}

func (r *BookingRepository) MarkNotified(ctx context.Context, id string) error {
	query := `UPDATE bookings SET whatsapp_notified = TRUE, updated_at = now() WHERE id = $1`

	res, err := r.exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepository) CountConfirmedSince(ctx context.Context, phone string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
			  WHERE user_phone = $1 AND status = $2 AND confirmed_at >= $3`

	row, err := r.queryRow(ctx, query, phone, domain.BookingStatusConfirmed, since)
	if err != nil {
		return 0, fmt.Errorf("count confirmed bookings: %w", err)
	}

	var n int
	if err = row.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}

	return n, nil
}

// CancelAwaitingBySlot cancels pending and held bookings of the slot. An empty exceptID cancels all of them.
func (r *BookingRepository) CancelAwaitingBySlot(ctx context.Context, slotID, exceptID, reason string) (int64, error) {
	query := `UPDATE bookings
			  SET status = $4, decision_reason = $5, updated_at = now()
			  WHERE slot_id = $1 AND ($2 = '' OR id::text <> $2) AND status = ANY($3)`

	res, err := r.exec(ctx, query,
		slotID, exceptID, pq.Array(domain.AwaitingStatuses),
		domain.BookingStatusCancelled, reason,
	)
	if err != nil {
		return 0, fmt.Errorf("cancel stale bookings: %w", err)
	}

	return res.RowsAffected()
}

func scanBooking(sc scanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		confirmedAt sql.NullTime
	)
	if err := sc.Scan(
		&b.ID, &b.UserName, &b.UserPhone, &b.SlotID, &b.Amount, &b.Status, &b.PaymentStatus, &b.PaymentOrderID,
		&confirmedAt, &b.WhatsappNotified, &b.DecisionReason, &b.Source, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.ConfirmedAt = timePtr(confirmedAt)

	return &b, nil
}
