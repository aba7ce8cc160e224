package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.company_id, u.email, u.full_name, u.password_hash, u.role,
	u.work_days, u.reminder_clock_in, u.reminder_clock_out,
	u.created_at, u.updated_at`

// userRow collects the columns that need decoding before they fit user.User.
type userRow struct {
	u          user.User
	workDays   []byte
	remindIn   *string
	remindOut  *string
	companyTZ  *string
	withCompTZ bool
}

func (r *userRow) dest() []any {
	d := []any{
		&r.u.ID, &r.u.CompanyID, &r.u.Email, &r.u.FullName, &r.u.PasswordHash, &r.u.Role,
		&r.workDays, &r.remindIn, &r.remindOut,
		&r.u.CreatedAt, &r.u.UpdatedAt,
	}
	if r.withCompTZ {
		d = append(d, &r.companyTZ)
	}
	return d
}

func (r *userRow) decode() (user.User, error) {
	u := r.u
	if len(r.workDays) > 0 {
		if err := json.Unmarshal(r.workDays, &u.WorkDays); err != nil {
			return user.User{}, fmt.Errorf("failed to decode work days of user %s: %w", u.ID, err)
		}
	}

	var err error
	if u.Reminders.ClockIn, err = parseStoredClock(r.remindIn); err != nil {
		return user.User{}, err
	}
	if u.Reminders.ClockOut, err = parseStoredClock(r.remindOut); err != nil {
		return user.User{}, err
	}
	u.CompanyTimezone = r.companyTZ
	return u, nil
}

func parseStoredClock(s *string) (*schedule.ClockTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, err := schedule.ParseClockTime(*s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reminder time: %w", err)
	}
	return &c, nil
}

func storedClock(c *schedule.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func encodeWorkDays(workDays []schedule.WorkDay) ([]byte, error) {
	if workDays == nil {
		workDays = []schedule.WorkDay{}
	}
	b, err := json.Marshal(workDays)
	if err != nil {
		return nil, fmt.Errorf("failed to encode work days: %w", err)
	}
	return b, nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where

	var row userRow
	if err := q.QueryRow(ctx, query, arg).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return row.decode()
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `u.email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	workDays, err := encodeWorkDays(newUser.WorkDays)
	if err != nil {
		return user.User{}, err
	}

	query := `
		INSERT INTO users AS u (
			company_id, email, full_name, password_hash, role,
			work_days, reminder_clock_in, reminder_clock_out
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	var row userRow
	err = q.QueryRow(ctx, query,
		newUser.CompanyID,
		newUser.Email,
		newUser.FullName,
		newUser.PasswordHash,
		newUser.Role,
		workDays,
		storedClock(newUser.Reminders.ClockIn),
		storedClock(newUser.Reminders.ClockOut),
	).Scan(row.dest()...)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		if isForeignKeyViolation(err) {
			return user.User{}, company.ErrCompanyNotFound
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return row.decode()
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, companyID string, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"u.company_id = $1"}
	args := []any{companyID}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		where = append(where, fmt.Sprintf("(u.full_name ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args)))
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + userColumns + ` FROM users u` + whereClause +
		fmt.Sprintf(" ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows, false)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByCompany implements user.UserRepository. Only employees occupy seats.
func (r *userRepositoryImpl) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE company_id = $1 AND role = $2`, companyID, user.RoleUser).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users of company %s: %w", companyID, err)
	}
	return count, nil
}

// userUpdate accumulates the SET clauses of a partial update.
type userUpdate struct {
	sets []string
	args []any
}

func (u *userUpdate) set(col string, val any) {
	u.args = append(u.args, val)
	u.sets = append(u.sets, fmt.Sprintf("%s = $%d", col, len(u.args)))
}

func (u *userUpdate) setWorkDays(workDays *[]schedule.WorkDay) error {
	if workDays == nil {
		return nil
	}
	encoded, err := encodeWorkDays(*workDays)
	if err != nil {
		return err
	}
	u.set("work_days", encoded)
	return nil
}

// exec runs the update on user id, restricted to companyID when it is set.
func (r *userRepositoryImpl) exec(ctx context.Context, upd userUpdate, id, companyID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	args := append(upd.args, id)
	where := fmt.Sprintf("u.id = $%d", len(args))
	if companyID != "" {
		args = append(args, companyID)
		where += fmt.Sprintf(" AND u.company_id = $%d", len(args))
	}

	query := `UPDATE users AS u SET ` + strings.Join(append(upd.sets, "updated_at = NOW()"), ", ") +
		` WHERE ` + where + ` RETURNING ` + userColumns

	var row userRow
	if err := q.QueryRow(ctx, query, args...).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return row.decode()
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	var upd userUpdate
	if req.FullName != nil {
		upd.set("full_name", *req.FullName)
	}
	if err := upd.setWorkDays(req.WorkDays); err != nil {
		return user.User{}, err
	}
	if req.Reminders != nil {
		upd.set("reminder_clock_in", storedClock(req.Reminders.ClockIn))
		upd.set("reminder_clock_out", storedClock(req.Reminders.ClockOut))
	}
	return r.exec(ctx, upd, id, "")
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	var upd userUpdate
	if req.Email != nil {
		upd.set("email", *req.Email)
	}
	if req.FullName != nil {
		upd.set("full_name", *req.FullName)
	}
	if req.Role != nil {
		upd.set("role", *req.Role)
	}
	if err := upd.setWorkDays(req.WorkDays); err != nil {
		return user.User{}, err
	}
	return r.exec(ctx, upd, req.ID, req.CompanyID)
}

// Delete implements user.UserRepository. Attendance, leave requests and
// notifications of the user go with it.
func (r *userRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password of user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ListWithReminders implements user.UserRepository.
func (r *userRepositoryImpl) ListWithReminders(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, c.timezone
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		WHERE u.reminder_clock_in IS NOT NULL OR u.reminder_clock_out IS NOT NULL
		ORDER BY u.id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with reminders: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows, true)
}

func collectUsers(rows pgx.Rows, withCompanyTZ bool) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		row := userRow{withCompTZ: withCompanyTZ}
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u, err := row.decode()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
