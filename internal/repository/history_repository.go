package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jv1nicius/keyControlBack/internal/model"
)

// ErrHistoryNotFound is returned when a history lookup fails.
var ErrHistoryNotFound = errors.New("history entry not found")

// HistoryRepo provides CRUD operations for history entries.  Entries
// are normally created through CreateTx, in the same transaction as the
// finalization they snapshot, but the transport layer also allows
// direct creation.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo constructs a HistoryRepo with the given DB handle.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

const historyInsert = `INSERT INTO history (reservation_id, room_id, responsible_id, start_time, end_time_actual)
                       VALUES (?, ?, ?, ?, ?)`

// Create inserts a history entry outside of any transaction and
// populates its generated ID.
func (r *HistoryRepo) Create(ctx context.Context, h *model.HistoryEntry) error {
	res, err := r.db.ExecContext(ctx, historyInsert, h.ReservationID, h.RoomID, h.ResponsibleID, h.StartTime, h.EndTimeActual)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// CreateTx inserts a history entry within the scope of an existing
// transaction.  Used by finalization so the snapshot commits together
// with the finalization row or not at all.
func (r *HistoryRepo) CreateTx(ctx context.Context, tx *sql.Tx, h *model.HistoryEntry) error {
	res, err := tx.ExecContext(ctx, historyInsert, h.ReservationID, h.RoomID, h.ResponsibleID, h.StartTime, h.EndTimeActual)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a history entry by ID.  ErrHistoryNotFound is
// returned when no row exists.
func (r *HistoryRepo) GetByID(ctx context.Context, id uint64) (*model.HistoryEntry, error) {
	const q = `SELECT id, reservation_id, room_id, responsible_id, start_time, end_time_actual FROM history WHERE id = ?`
	var h model.HistoryEntry
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.ReservationID, &h.RoomID, &h.ResponsibleID, &h.StartTime, &h.EndTimeActual)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns one page of history entries ordered by ID.
func (r *HistoryRepo) List(ctx context.Context, page, perPage int) ([]model.HistoryEntry, error) {
	const q = `SELECT id, reservation_id, room_id, responsible_id, start_time, end_time_actual FROM history ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HistoryEntry, 0, perPage)
	for rows.Next() {
		var h model.HistoryEntry
		if err := rows.Scan(&h.ID, &h.ReservationID, &h.RoomID, &h.ResponsibleID, &h.StartTime, &h.EndTimeActual); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update persists the history entry's current field values.
func (r *HistoryRepo) Update(ctx context.Context, h *model.HistoryEntry) error {
	const q = `UPDATE history SET reservation_id = ?, room_id = ?, responsible_id = ?, start_time = ?, end_time_actual = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, h.ReservationID, h.RoomID, h.ResponsibleID, h.StartTime, h.EndTimeActual, h.ID)
	return err
}

// Delete removes a history entry.  ErrHistoryNotFound is returned when
// no row was deleted.
func (r *HistoryRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM history WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
