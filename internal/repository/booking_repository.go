package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/myflycloudly/my-fly-cloudly/internal/model"
)

// BookingRepo provides access to the bookings table and assembles
// booking rows with their service and owner profile. The store has
// no single query that joins bookings, services and profiles at
// once, so listings run in two phases: bookings+services first, then
// one batched profile fetch merged in memory.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ServiceSummary is the slice of a service embedded in booking
// responses.
type ServiceSummary struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
}

// ProfileSummary is the slice of a profile embedded in booking
// responses. It is null when the owner's profile row is missing.
type ProfileSummary struct {
	ID       uint64  `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

// BookingDetail is a booking with its service and (optionally) the
// owner's profile merged in.
type BookingDetail struct {
	ID           uint64          `json:"id"`
	UserID       uint64          `json:"user_id"`
	ServiceID    uint64          `json:"service_id"`
	BookingDate  string          `json:"booking_date"`
	BookingTime  string          `json:"booking_time"`
	Participants int             `json:"participants"`
	TotalPrice   float64         `json:"total_price"`
	Notes        *string         `json:"notes"`
	Status       string          `json:"status"`
	AdminMessage *string         `json:"admin_message"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Service      *ServiceSummary `json:"services"`
	Profile      *ProfileSummary `json:"profiles"`
}

// booking_date/booking_time are formatted in SQL so they scan as
// strings whether or not the driver's parseTime option is on.
const bookingSelect = `SELECT b.id, b.user_id, b.service_id,
                              DATE_FORMAT(b.booking_date, '%Y-%m-%d'), TIME_FORMAT(b.booking_time, '%H:%i'),
                              b.participants, b.total_price, b.notes, b.status, b.admin_message,
                              b.created_at, b.updated_at,
                              s.id, s.name, s.description, s.price, s.duration
                       FROM bookings b
                       LEFT JOIN services s ON s.id = b.service_id`

// Create inserts a booking. The status column is always written as
// pending regardless of what the caller put in b, and the generated
// id and timestamps are read back onto b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if r.db == nil {
		return ErrUnavailable
	}
	const q = `INSERT INTO bookings
               (user_id, service_id, booking_date, booking_time, participants, total_price, notes, status)
               VALUES (?,?,?,?,?,?,?,'pending')`
	res, err := r.db.ExecContext(ctx, q,
		b.UserID, b.ServiceID, b.BookingDate, b.BookingTime,
		b.Participants, b.TotalPrice, b.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT status, created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.Status, &b.CreatedAt, &b.UpdatedAt)
}

// ListByUser returns a user's bookings, each joined with its
// service, newest first. The owner profile is not merged here; a
// user viewing their own bookings already knows who they are.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+` WHERE b.user_id = ? ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

// GetByID returns one booking with its service, then performs a
// second, separate lookup for the owner's profile. A failed profile
// lookup degrades to a null profile rather than failing the read.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*BookingDetail, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.db.QueryContext(ctx, bookingSelect+` WHERE b.id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details, err := scanBookingRows(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, sql.ErrNoRows
	}
	det := details[0]

	var p ProfileSummary
	err = r.db.QueryRowContext(ctx,
		`SELECT id, full_name, email, phone FROM profiles WHERE id = ?`,
		det.UserID).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone)
	if err == nil {
		det.Profile = &p
	}
	return &det, nil
}

// ListAll returns bookings newest first, optionally filtered by
// status and capped at limit (0 means no cap), with services joined
// and owner profiles batch-merged. Profiles for the distinct owner
// set are fetched in a single IN query and left-merged by id; an
// owner without a profile row merges as null.
func (r *BookingRepo) ListAll(ctx context.Context, status string, limit int) ([]BookingDetail, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	q := bookingSelect
	args := []interface{}{}
	if status != "" {
		q += ` WHERE b.status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY b.created_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details, err := scanBookingRows(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	profiles, err := r.profilesForOwners(ctx, details)
	if err != nil {
		// Continue without profiles; every merged profile stays null.
		return details, nil
	}
	mergeProfiles(details, profiles)
	return details, nil
}

// profilesForOwners fetches the profiles of the distinct owners of
// the given bookings with one IN query.
func (r *BookingRepo) profilesForOwners(ctx context.Context, details []BookingDetail) ([]ProfileSummary, error) {
	seen := make(map[uint64]bool, len(details))
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		if seen[d.UserID] {
			continue
		}
		seen[d.UserID] = true
		ids = append(ids, d.UserID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT id, full_name, email, phone FROM profiles WHERE id IN (` +
		strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ProfileSummary
	for rows.Next() {
		var p ProfileSummary
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// mergeProfiles left-merges profiles into bookings by owner id.
// Bookings whose owner has no profile row keep a nil Profile.
func mergeProfiles(details []BookingDetail, profiles []ProfileSummary) {
	byID := make(map[uint64]*ProfileSummary, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for i := range details {
		details[i].Profile = byID[details[i].UserID]
	}
}

// UpdateStatus moves a pending booking to approved or rejected.
// adminMessage is written only when its trimmed value is non-empty;
// a blank message never overwrites an existing one. The pending-only
// guard lives in the WHERE clause so concurrent decisions cannot
// both land. Returns ErrConflict when the booking exists but is no
// longer pending, sql.ErrNoRows when it does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status, adminMessage string) (*BookingDetail, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	set := "status=?, updated_at=UTC_TIMESTAMP()"
	args := []interface{}{status}
	if msg := strings.TrimSpace(adminMessage); msg != "" {
		set += ", admin_message=?"
		args = append(args, msg)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET "+set+" WHERE id=? AND status='pending'", args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var current string
		err := r.db.QueryRowContext(ctx,
			"SELECT status FROM bookings WHERE id=?", id).Scan(&current)
		if err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return r.GetByID(ctx, id)
}

// CountByStatus counts bookings, all of them when status is empty.
func (r *BookingRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	if r.db == nil {
		return 0, ErrUnavailable
	}
	var n int
	var err error
	if status == "" {
		err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookings WHERE status=?", status).Scan(&n)
	}
	return n, err
}

// ApprovedRevenue sums total_price across approved bookings. The sum
// runs in application code over the fetched rows, mirroring how the
// dashboard derives revenue from the listing primitive.
func (r *BookingRepo) ApprovedRevenue(ctx context.Context) (float64, error) {
	if r.db == nil {
		return 0, ErrUnavailable
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT total_price FROM bookings WHERE status='approved'")
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var total float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return 0, err
		}
		total += p
	}
	return total, rows.Err()
}

// scanBookingRows reads booking+service rows produced by
// bookingSelect. The service columns come from a LEFT JOIN and may
// all be NULL when the catalog row was deleted.
func scanBookingRows(rows *sql.Rows) ([]BookingDetail, error) {
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var svcID sql.NullInt64
		var svcName, svcDesc, svcDur sql.NullString
		var svcPrice sql.NullFloat64
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ServiceID, &d.BookingDate, &d.BookingTime,
			&d.Participants, &d.TotalPrice, &d.Notes, &d.Status, &d.AdminMessage,
			&d.CreatedAt, &d.UpdatedAt,
			&svcID, &svcName, &svcDesc, &svcPrice, &svcDur,
		); err != nil {
			return nil, err
		}
		if svcID.Valid {
			d.Service = &ServiceSummary{
				ID:          uint64(svcID.Int64),
				Name:        svcName.String,
				Description: svcDesc.String,
				Price:       svcPrice.Float64,
				Duration:    svcDur.String,
			}
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
