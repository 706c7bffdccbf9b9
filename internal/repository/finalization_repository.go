package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jv1nicius/keyControlBack/internal/model"
)

// ErrFinalizationNotFound is returned when a finalization lookup fails.
var ErrFinalizationNotFound = errors.New("finalization not found")

// FinalizationRepo provides CRUD operations for finalizations.  A
// finalization and its history snapshot are written together, so the
// insert is transactional only.
type FinalizationRepo struct {
	db *sql.DB
}

// NewFinalizationRepo constructs a FinalizationRepo with the given DB handle.
func NewFinalizationRepo(db *sql.DB) *FinalizationRepo { return &FinalizationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *FinalizationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new finalization within the scope of an existing
// transaction and populates its generated ID.
func (r *FinalizationRepo) CreateTx(ctx context.Context, tx *sql.Tx, fin *model.Finalization) error {
	const q = `INSERT INTO finalizations (reservation_id, finalized_at) VALUES (?, ?)`
	result, err := tx.ExecContext(ctx, q, fin.ReservationID, fin.FinalizedAt)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	fin.ID = uint64(id)
	return nil
}

// GetByID retrieves a finalization by ID.  ErrFinalizationNotFound is
// returned when no row exists.
func (r *FinalizationRepo) GetByID(ctx context.Context, id uint64) (*model.Finalization, error) {
	const q = `SELECT id, reservation_id, finalized_at FROM finalizations WHERE id = ?`
	var fin model.Finalization
	err := r.db.QueryRowContext(ctx, q, id).Scan(&fin.ID, &fin.ReservationID, &fin.FinalizedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFinalizationNotFound
		}
		return nil, err
	}
	return &fin, nil
}

// List returns one page of finalizations ordered by ID.
func (r *FinalizationRepo) List(ctx context.Context, page, perPage int) ([]model.Finalization, error) {
	const q = `SELECT id, reservation_id, finalized_at FROM finalizations ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Finalization, 0, perPage)
	for rows.Next() {
		var fin model.Finalization
		if err := rows.Scan(&fin.ID, &fin.ReservationID, &fin.FinalizedAt); err != nil {
			return nil, err
		}
		out = append(out, fin)
	}
	return out, rows.Err()
}

// Update persists the finalization's current field values.
func (r *FinalizationRepo) Update(ctx context.Context, fin *model.Finalization) error {
	const q = `UPDATE finalizations SET reservation_id = ?, finalized_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, fin.ReservationID, fin.FinalizedAt, fin.ID)
	return err
}

// Delete removes a finalization.  ErrFinalizationNotFound is returned
// when no row was deleted.  The history snapshot created alongside the
// finalization is not removed.
func (r *FinalizationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM finalizations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFinalizationNotFound
	}
	return nil
}
