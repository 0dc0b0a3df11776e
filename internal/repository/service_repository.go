package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
)

// ServiceRepo provides CRUD over the services catalog.
type ServiceRepo struct{ db *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceColumns = `id, name, description, price, duration, image_url, active, created_at, updated_at`

// ListActive returns publicly listed services, newest first.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]model.Service, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE active = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

// GetByID fetches one service, active or not.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	if r.db == nil {
		return model.Service{}, ErrUnavailable
	}
	var s model.Service
	err := r.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ? LIMIT 1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Duration,
			&s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create inserts a catalog item and reads the generated row back.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	if r.db == nil {
		return ErrUnavailable
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO services (name, description, price, duration, image_url, active) VALUES (?,?,?,?,?,?)`,
		s.Name, s.Description, s.Price, s.Duration, s.ImageURL, s.Active)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM services WHERE id = ?`, s.ID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

// ServiceUpdate carries the optional fields of a partial service
// update. Nil pointers are left untouched.
type ServiceUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *string
	ImageURL    *string
	Active      *bool
}

// Update applies a partial update with a server-set updated_at and
// returns the fresh row.
func (r *ServiceRepo) Update(ctx context.Context, id uint64, upd ServiceUpdate) (model.Service, error) {
	if r.db == nil {
		return model.Service{}, ErrUnavailable
	}
	set := []string{"updated_at=UTC_TIMESTAMP()"}
	args := []interface{}{}
	if upd.Name != nil {
		set = append(set, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		set = append(set, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.Price != nil {
		set = append(set, "price=?")
		args = append(args, *upd.Price)
	}
	if upd.Duration != nil {
		set = append(set, "duration=?")
		args = append(args, *upd.Duration)
	}
	if upd.ImageURL != nil {
		set = append(set, "image_url=?")
		args = append(args, *upd.ImageURL)
	}
	if upd.Active != nil {
		set = append(set, "active=?")
		args = append(args, *upd.Active)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE services SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Service{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// May be a no-op update on an existing row; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Service{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a service permanently. Bookings referencing it keep
// their rows; listings then render a null service.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	if r.db == nil {
		return ErrUnavailable
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActive toggles public visibility.
func (r *ServiceRepo) SetActive(ctx context.Context, id uint64, active bool) (model.Service, error) {
	return r.Update(ctx, id, ServiceUpdate{Active: &active})
}

func scanServices(rows *sql.Rows) ([]model.Service, error) {
	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.Duration,
			&s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
