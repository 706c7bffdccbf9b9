package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jv1nicius/keyControlBack/internal/model"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides CRUD operations for rooms.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span more than one repository.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// Create inserts a new room and populates its generated ID.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (name, key_name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.KeyName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// GetByID retrieves a room by its ID.  ErrRoomNotFound is returned when
// no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, key_name FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &room.KeyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List returns one page of rooms ordered by ID.
func (r *RoomRepo) List(ctx context.Context, page, perPage int) ([]model.Room, error) {
	const q = `SELECT id, name, key_name FROM rooms ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Room, 0, perPage)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.KeyName); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// Update persists the room's current field values.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms SET name = ?, key_name = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, room.Name, room.KeyName, room.ID)
	return err
}

// Delete removes a room.  ErrRoomNotFound is returned when no row was
// deleted.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM rooms WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// LockTx loads the room row inside tx with a FOR UPDATE lock.  While
// the transaction is open, concurrent reservation creators for the same
// room block here, which serializes the check-then-insert sequence and
// keeps the no-overlap invariant under concurrency.
func (r *RoomRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Room, error) {
	const q = `SELECT id, name, key_name FROM rooms WHERE id = ? FOR UPDATE`
	var room model.Room
	err := tx.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &room.KeyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}
