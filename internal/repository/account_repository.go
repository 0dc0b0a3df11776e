package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
	"github.com/myflycloudly/my-fly-cloudly/internal/utils"
)

// AccountRepo provides access to the users and profiles tables. The
// two tables are deliberately separate: users is the authoritative
// identity (credentials only), profiles the descriptive record that
// can drift or go missing and is repaired on read paths.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// CreateUser inserts an identity row and returns its ID. The email
// is normalized before insertion.
func (r *AccountRepo) CreateUser(ctx context.Context, email, password string, cost int) (uint64, error) {
	if r.DB == nil {
		return 0, ErrUnavailable
	}
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetUserByEmail fetches an identity by normalized email.
func (r *AccountRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	if r.DB == nil {
		return model.User{}, ErrUnavailable
	}
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetUserByID fetches an identity by id.
func (r *AccountRepo) GetUserByID(ctx context.Context, id uint64) (model.User, error) {
	if r.DB == nil {
		return model.User{}, ErrUnavailable
	}
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// UpdatePassword replaces the stored bcrypt hash for a user.
func (r *AccountRepo) UpdatePassword(ctx context.Context, userID uint64, password string, cost int) error {
	if r.DB == nil {
		return ErrUnavailable
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, userID)
	return err
}

// GetProfile is a may-not-exist read: a missing row yields (nil, nil)
// rather than an error, so callers can self-heal instead of failing
// the session.
func (r *AccountRepo) GetProfile(ctx context.Context, id uint64) (*model.Profile, error) {
	if r.DB == nil {
		return nil, ErrUnavailable
	}
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,phone,nationality,email,role,updated_at FROM profiles WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.FullName, &p.Phone, &p.Nationality, &p.Email, &p.Role, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Role = normalizeRole(p.Role)
	return &p, nil
}

// UpsertProfile creates or replaces the profile row keyed by the
// user id. Used at registration and by the sign-in self-heal path.
func (r *AccountRepo) UpsertProfile(ctx context.Context, p model.Profile) error {
	if r.DB == nil {
		return ErrUnavailable
	}
	const q = `INSERT INTO profiles (id, full_name, phone, nationality, email, role)
               VALUES (?,?,?,?,?,?)
               ON DUPLICATE KEY UPDATE
                 full_name=VALUES(full_name), phone=VALUES(phone),
                 nationality=VALUES(nationality), email=VALUES(email)`
	_, err := r.DB.ExecContext(ctx, q,
		p.ID, p.FullName, p.Phone, p.Nationality, p.Email, normalizeRole(p.Role))
	return err
}

// ProfileUpdate carries the optional fields of a partial profile
// update. Nil pointers are left untouched.
type ProfileUpdate struct {
	FullName    *string
	Phone       *string
	Nationality *string
}

// UpdateProfile applies a partial update with a server-set
// updated_at and returns the fresh row. An update with no fields set
// still bumps updated_at.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (*model.Profile, error) {
	if r.DB == nil {
		return nil, ErrUnavailable
	}
	set := []string{"updated_at=UTC_TIMESTAMP()"}
	args := []interface{}{}
	if upd.FullName != nil {
		set = append(set, "full_name=?")
		args = append(args, *upd.FullName)
	}
	if upd.Phone != nil {
		set = append(set, "phone=?")
		args = append(args, *upd.Phone)
	}
	if upd.Nationality != nil {
		set = append(set, "nationality=?")
		args = append(args, *upd.Nationality)
	}
	args = append(args, id)
	q := "UPDATE profiles SET " + strings.Join(set, ", ") + " WHERE id=?"
	if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	p, err := r.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

// RepairProfileEmail syncs profiles.email with the identity email.
// Invoked on sign-in when the two have drifted apart.
func (r *AccountRepo) RepairProfileEmail(ctx context.Context, id uint64, email string) error {
	if r.DB == nil {
		return ErrUnavailable
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET email=? WHERE id=?", email, id)
	return err
}

// normalizeRole lowercases a role and defaults an absent one to
// "user". Role values are free text in the store and arrive in any
// casing.
func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return "user"
	}
	return role
}
