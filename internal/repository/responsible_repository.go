package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jv1nicius/keyControlBack/internal/model"
)

// ErrResponsibleNotFound is returned when a responsible lookup fails.
var ErrResponsibleNotFound = errors.New("responsible not found")

// ResponsibleRepo provides CRUD operations for responsibles plus the
// uniqueness probes used by the validation layer before inserts.
type ResponsibleRepo struct {
	db *sql.DB
}

// NewResponsibleRepo constructs a ResponsibleRepo with the given DB handle.
func NewResponsibleRepo(db *sql.DB) *ResponsibleRepo { return &ResponsibleRepo{db: db} }

// Create inserts a new responsible and populates its generated ID.
func (r *ResponsibleRepo) Create(ctx context.Context, resp *model.Responsible) error {
	const q = `INSERT INTO responsibles (name, siap, cpf, birth_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, resp.Name, resp.Siap, resp.CPF, resp.BirthDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	resp.ID = uint64(id)
	return nil
}

// GetByID retrieves a responsible by ID.  ErrResponsibleNotFound is
// returned when no row exists.
func (r *ResponsibleRepo) GetByID(ctx context.Context, id uint64) (*model.Responsible, error) {
	const q = `SELECT id, name, siap, cpf, birth_date FROM responsibles WHERE id = ?`
	var resp model.Responsible
	err := r.db.QueryRowContext(ctx, q, id).Scan(&resp.ID, &resp.Name, &resp.Siap, &resp.CPF, &resp.BirthDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResponsibleNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// List returns one page of responsibles ordered by ID.
func (r *ResponsibleRepo) List(ctx context.Context, page, perPage int) ([]model.Responsible, error) {
	const q = `SELECT id, name, siap, cpf, birth_date FROM responsibles ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Responsible, 0, perPage)
	for rows.Next() {
		var resp model.Responsible
		if err := rows.Scan(&resp.ID, &resp.Name, &resp.Siap, &resp.CPF, &resp.BirthDate); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

// Update persists the responsible's current field values.
func (r *ResponsibleRepo) Update(ctx context.Context, resp *model.Responsible) error {
	const q = `UPDATE responsibles SET name = ?, siap = ?, cpf = ?, birth_date = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, resp.Name, resp.Siap, resp.CPF, resp.BirthDate, resp.ID)
	return err
}

// Delete removes a responsible.  ErrResponsibleNotFound is returned
// when no row was deleted.
func (r *ResponsibleRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM responsibles WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResponsibleNotFound
	}
	return nil
}

// SiapInUse reports whether another responsible already holds the given
// siap code.  excludeID skips one row so updates do not collide with
// themselves; pass 0 on create.
func (r *ResponsibleRepo) SiapInUse(ctx context.Context, siap string, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM responsibles WHERE siap = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, siap, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CPFInUse reports whether another responsible already holds the given
// cpf.  excludeID behaves as in SiapInUse.
func (r *ResponsibleRepo) CPFInUse(ctx context.Context, cpf string, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM responsibles WHERE cpf = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, cpf, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
