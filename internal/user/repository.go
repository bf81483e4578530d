package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"
)

// NOTE: This repository assumes the following tables exist (see migrations/):
// - users
// - roles
//
// users.username and users.email carry unique constraints; roles.name does too.

var ErrNotFound = errors.New("user: not found")

// Repository is the persistence contract for the credential store.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]User, error)

	FindRoleByID(ctx context.Context, id int64) (Role, error)
	FindRoleByName(ctx context.Context, name string) (Role, error)
	EnsureRoles(ctx context.Context, roles []Role) error
}

type sqlRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

const userColumns = `
u.id, u.username, u.email, u.full_name, u.hashed_password, u.role_id, r.name,
u.is_active, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var (
		u        User
		fullName sql.NullString
		roleID   sql.NullInt64
		roleName sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&fullName,
		&u.PasswordHash,
		&roleID,
		&roleName,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.FullName = fullName.String
	if roleID.Valid {
		id := roleID.Int64
		u.RoleID = &id
	}
	u.RoleName = roleName.String
	return u, nil
}

func (r *sqlRepository) CreateUser(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (username, email, full_name, hashed_password, role_id, is_active)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, TRUE)
RETURNING id, is_active, created_at, updated_at
`
	var roleID sql.NullInt64
	if u.RoleID != nil {
		roleID = sql.NullInt64{Int64: *u.RoleID, Valid: true}
	}
	return r.db.QueryRowContext(ctx, q,
		u.Username,
		u.Email,
		u.FullName,
		u.PasswordHash,
		roleID,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *sqlRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.username = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, username))
}

func (r *sqlRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.email = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *sqlRepository) FindByID(ctx context.Context, id int64) (User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.id = $1
`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *sqlRepository) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
ORDER BY u.id
OFFSET $1 LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *sqlRepository) FindRoleByID(ctx context.Context, id int64) (Role, error) {
	const q = `
SELECT id, name, description, created_at
FROM roles
WHERE id = $1
`
	return scanRole(r.db.QueryRowContext(ctx, q, id))
}

func (r *sqlRepository) FindRoleByName(ctx context.Context, name string) (Role, error) {
	const q = `
SELECT id, name, description, created_at
FROM roles
WHERE name = $1
`
	return scanRole(r.db.QueryRowContext(ctx, q, name))
}

// EnsureRoles seeds the role catalog in one transaction so a failed start
// never leaves a partial catalog. ON CONFLICT DO NOTHING makes the seed
// idempotent and safe when several instances start concurrently.
func (r *sqlRepository) EnsureRoles(ctx context.Context, roles []Role) error {
	const q = `
INSERT INTO roles (name, description)
VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING
`
	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, role := range roles {
			if _, err := tx.ExecContext(ctx, q, role.Name, role.Description); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanRole(row interface{ Scan(dest ...any) error }) (Role, error) {
	var (
		role Role
		desc sql.NullString
	)
	err := row.Scan(&role.ID, &role.Name, &desc, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	role.Description = desc.String
	return role, nil
}
