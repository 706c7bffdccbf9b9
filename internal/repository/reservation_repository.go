package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jv1nicius/keyControlBack/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for reservations.  Creation
// happens through CreateTx only: the availability check and the insert
// must share one transaction, so the caller owns the transaction and
// commits or rolls back after both steps.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates its generated ID.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (room_id, responsible_id, start_time, end_time) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.RoomID, res.ResponsibleID, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// GetByID retrieves a reservation by ID.  ErrReservationNotFound is
// returned when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, room_id, responsible_id, start_time, end_time FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// GetByIDTx is GetByID inside an existing transaction.  Finalization
// reads the reservation through the same transaction that writes the
// finalization and history rows.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, room_id, responsible_id, start_time, end_time FROM reservations WHERE id = ?`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByRoomTx returns every reservation of one room inside tx.  The
// availability check runs over this full set: no ordering, no pruning,
// the overlap predicate decides in Go.
func (r *ReservationRepo) ListByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, room_id, responsible_id, start_time, end_time FROM reservations WHERE room_id = ?`
	rows, err := tx.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// List returns one page of reservations ordered by ID.
func (r *ReservationRepo) List(ctx context.Context, page, perPage int) ([]model.Reservation, error) {
	const q = `SELECT id, room_id, responsible_id, start_time, end_time FROM reservations ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0, perPage)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Update persists the reservation's current field values.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations SET room_id = ?, responsible_id = ?, start_time = ?, end_time = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, res.RoomID, res.ResponsibleID, res.StartTime, res.EndTime, res.ID)
	return err
}

// Delete removes a reservation.  ErrReservationNotFound is returned
// when no row was deleted.  History snapshots are untouched.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
