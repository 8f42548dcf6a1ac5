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

const slotColumns = `id, slot_date, start_min, end_min, status, claimed_by,
	hold_expires_at, price, assigned_worker, created_at, updated_at`

type SlotRepository struct {
	conn
}

func NewSlotRepo(db *dbpg.DB) *SlotRepository {
	return &SlotRepository{conn: newConn(db)}
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	row, err := r.queryRow(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	return s, nil
}

func (r *SlotRepository) FindFree(ctx context.Context, date time.Time, iv domain.Interval) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots
			  WHERE slot_date = $1 AND start_min = $2 AND end_min = $3 AND status = $4`

	row, err := r.queryRow(ctx, query, date, int(iv.Start), int(iv.End), domain.SlotStatusFree)
	if err != nil {
		return nil, fmt.Errorf("find free slot: %w", err)
	}

	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	return s, nil
}

func (r *SlotRepository) FindOverlapping(
	ctx context.Context,
	date time.Time,
	iv domain.Interval,
	statuses []domain.SlotStatus,
	excludeID string,
) ([]*domain.Slot, error) {
	// excludeID пустой, если исключать нечего
	query := `SELECT ` + slotColumns + ` FROM slots
			  WHERE slot_date = $1
			    AND start_min < $3 AND end_min > $2
			    AND status = ANY($4)
			    AND ($5 = '' OR id::text <> $5)
			  ORDER BY start_min`

	rows, err := r.query(ctx, query, date, int(iv.Start), int(iv.End), pq.Array(statuses), excludeID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping slots: %w", err)
	}

	return collectSlots(rows)
}

func (r *SlotRepository) Upsert(ctx context.Context, s *domain.Slot) (*domain.Slot, bool, error) {
	query := `INSERT INTO slots (id, slot_date, start_min, end_min, status, price, assigned_worker, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			  ON CONFLICT (slot_date, start_min, end_min) DO NOTHING
			  RETURNING ` + slotColumns

	row, err := r.queryRow(ctx, query,
		s.ID, s.Date, int(s.Interval.Start), int(s.Interval.End),
		s.Status, s.Price, s.AssignedWorker,
	)
	if err != nil {
		return nil, false, fmt.Errorf("upsert slot: %w", err)
	}

	created, err := scanSlot(row)
	switch {
	case err == nil:
		return created, true, nil
	case errors.Is(err, sql.ErrNoRows):
		// строка уже есть, возвращаем её
	case pgCode(err) == pgExclusionViolation:
		return nil, false, domain.ErrSlotConflict
	default:
		return nil, false, fmt.Errorf("insert slot: %w", err)
	}

	existing, err := r.findExact(ctx, s.Date, s.Interval)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *SlotRepository) CreateMissing(ctx context.Context, slots []*domain.Slot) (int, error) {
	query := `INSERT INTO slots (id, slot_date, start_min, end_min, status, price, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			  ON CONFLICT (slot_date, start_min, end_min) DO NOTHING`

	created := 0
	for _, s := range slots {
		res, err := r.exec(ctx, query,
			s.ID, s.Date, int(s.Interval.Start), int(s.Interval.End), s.Status, s.Price,
		)
		if err != nil {
			if pgCode(err) == pgExclusionViolation {
				continue
			}
			return created, fmt.Errorf("insert slot %s %s: %w", s.Date.Format(domain.DateLayout), s.Interval, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("slot rows affected: %w", err)
		}
		created += int(n)
	}

	return created, nil
}

func (r *SlotRepository) SetStatus(ctx context.Context, id string, status domain.SlotStatus, holdExpiresAt *time.Time) error {
	query := `UPDATE slots
			  SET status = $2,
			      hold_expires_at = $3,
			      claimed_by = CASE WHEN $2 IN ('held', 'booked') THEN claimed_by ELSE '' END,
			      updated_at = now()
			  WHERE id = $1`

	res, err := r.exec(ctx, query, id, status, nullTime(holdExpiresAt))
	if err != nil {
		if pgCode(err) == pgExclusionViolation {
			return domain.ErrSlotConflict
		}
		return fmt.Errorf("set slot status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("slot rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrSlotNotFound
	}

	return nil
}

func (r *SlotRepository) CompareAndSetStatus(ctx context.Context, u domain.SlotUpdate) (*domain.Slot, error) {
	// Атомарно проверяем статус, владельца и срок холда
	query := `UPDATE slots
			  SET status = $2, claimed_by = $3, hold_expires_at = $4, updated_at = now()
			  WHERE id = $1
			    AND status = ANY($5)
			    AND ($6 = '' OR status NOT IN ('held', 'booked') OR claimed_by = $6)
			    AND ($7::timestamptz IS NULL OR status <> 'held' OR hold_expires_at > $7)
			  RETURNING ` + slotColumns

	row, err := r.queryRow(ctx, query,
		u.ID, u.To, u.ClaimedBy, nullTime(u.HoldExpiresAt),
		pq.Array(u.From), u.Owner, nullTime(u.LiveAt),
	)
	if err != nil {
		return nil, fmt.Errorf("update slot status: %w", err)
	}

	s, err := scanSlot(row)
	switch {
	case err == nil:
		return s, nil
	case pgCode(err) == pgExclusionViolation:
		return nil, domain.ErrSlotConflict
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("update slot status: %w", err)
	}

	// Определяем причину: слота нет или статус изменился
	current, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: slot %s is %s", domain.ErrStatusConflict, current.ID, current.Status)
}

func (r *SlotRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE slot_date = $1 ORDER BY start_min`

	rows, err := r.query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list slots by date: %w", err)
	}

	return collectSlots(rows)
}

func (r *SlotRepository) CountByStatus(ctx context.Context, date time.Time, status domain.SlotStatus) (int, error) {
	query := `SELECT COUNT(*) FROM slots WHERE slot_date = $1 AND status = $2`

	row, err := r.queryRow(ctx, query, date, status)
	if err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}

	var n int
	if err = row.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}

	return n, nil
}

func (r *SlotRepository) ReleaseExpiredHolds(ctx context.Context, now time.Time) ([]*domain.Slot, error) {
	query := `UPDATE slots
			  SET status = $2, claimed_by = '', hold_expires_at = NULL, updated_at = now()
			  WHERE status = $1 AND hold_expires_at <= $3
			  RETURNING ` + slotColumns

	rows, err := r.query(ctx, query, domain.SlotStatusHeld, domain.SlotStatusFree, now)
	if err != nil {
		return nil, fmt.Errorf("release expired holds: %w", err)
	}

	return collectSlots(rows)
}

func (r *SlotRepository) DeletePastFree(ctx context.Context, before time.Time) (int64, error) {
	// слоты с историей бронирований не трогаем
	query := `DELETE FROM slots s
			  WHERE s.slot_date < $1 AND s.status = ANY($2)
			    AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.slot_id = s.id)`

	res, err := r.exec(ctx, query, before, pq.Array([]domain.SlotStatus{domain.SlotStatusFree, domain.SlotStatusExpired}))
	if err != nil {
		return 0, fmt.Errorf("delete past slots: %w", err)
	}

	return res.RowsAffected()
}

func (r *SlotRepository) findExact(ctx context.Context, date time.Time, iv domain.Interval) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots
			  WHERE slot_date = $1 AND start_min = $2 AND end_min = $3`

	row, err := r.queryRow(ctx, query, date, int(iv.Start), int(iv.End))
	if err != nil {
		return nil, fmt.Errorf("get slot by interval: %w", err)
	}

	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}

	return s, nil
}

func scanSlot(sc scanner) (*domain.Slot, error) {
	var (
		s         domain.Slot
		start     int
		end       int
		expiresAt sql.NullTime
		worker    sql.NullString
	)
	if err := sc.Scan(
		&s.ID, &s.Date, &start, &end, &s.Status, &s.ClaimedBy,
		&expiresAt, &s.Price, &worker, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Date = domain.DateOf(s.Date)
	s.Interval = domain.Interval{Start: domain.Clock(start), End: domain.Clock(end)}
	s.HoldExpiresAt = timePtr(expiresAt)
	if worker.Valid {
		s.AssignedWorker = &worker.String
	}

	return &s, nil
}

func collectSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	defer rows.Close()

	var res []*domain.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		res = append(res, s)
	}

	return res, rows.Err()
}
