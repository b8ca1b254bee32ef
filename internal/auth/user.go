package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecoleweb/portail/internal/rbac"
)

var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is the single error returned for both unknown
// login codes and wrong passwords, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID           string    `json:"id"`
	LoginCode    string    `json:"login_code"`
	Name         string    `json:"name"`
	Role         rbac.Role `json:"role"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
}

type UserStore interface {
	// GetActive returns the user only when it exists AND is active.
	GetActive(ctx context.Context, id string) (User, error)
	GetByLoginCode(ctx context.Context, code string) (User, error)
	// UpsertUser inserts or replaces the row matching login_code.
	UpsertUser(ctx context.Context, u User) error
	SetPassword(ctx context.Context, id, hash string) error
	SetActive(ctx context.Context, id string, active bool) error
	ListUsers(ctx context.Context, role rbac.Role) ([]User, error)
}

// Authenticate checks a login code / password pair against the store.
// Any failure collapses into ErrInvalidCredentials.
func Authenticate(ctx context.Context, store UserStore, loginCode, password string) (User, error) {
	u, err := store.GetByLoginCode(ctx, loginCode)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !u.Active || !CheckPassword(password, u.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser resolves a session token to a live user. The store lookup
// re-checks the active flag on every call, so deactivating an account
// takes effect immediately instead of at token expiry.
func CurrentUser(ctx context.Context, sessions *Sessions, store UserStore, token string) (User, bool) {
	claims := sessions.Verify(token)
	if claims == nil {
		return User{}, false
	}
	u, err := store.GetActive(ctx, claims.Sub)
	if err != nil {
		return User{}, false
	}
	return u, true
}

// ---- SQL store ----

type SQLUserStore struct{ db *sql.DB }

func NewSQLUserStore(db *sql.DB) *SQLUserStore { return &SQLUserStore{db: db} }

func (s *SQLUserStore) GetActive(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,login_code,name,role,password_hash,active FROM users WHERE id=$1 AND active=TRUE`, id)
	return scanUser(row)
}

func (s *SQLUserStore) GetByLoginCode(ctx context.Context, code string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,login_code,name,role,password_hash,active FROM users WHERE login_code=$1`, code)
	return scanUser(row)
}

func (s *SQLUserStore) UpsertUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,login_code,name,role,password_hash,active)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (login_code) DO UPDATE SET
		   name=EXCLUDED.name, role=EXCLUDED.role,
		   password_hash=EXCLUDED.password_hash, active=EXCLUDED.active`,
		u.ID, u.LoginCode, u.Name, string(u.Role), u.PasswordHash, u.Active)
	return err
}

func (s *SQLUserStore) SetPassword(ctx context.Context, id, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, hash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLUserStore) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLUserStore) ListUsers(ctx context.Context, role rbac.Role) ([]User, error) {
	var rows *sql.Rows
	var err error
	if role == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,login_code,name,role,password_hash,active FROM users ORDER BY login_code`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,login_code,name,role,password_hash,active FROM users WHERE role=$1 ORDER BY login_code`, string(role))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		var roleStr string
		if err := rows.Scan(&u.ID, &u.LoginCode, &u.Name, &roleStr, &u.PasswordHash, &u.Active); err != nil {
			return nil, err
		}
		u.Role = rbac.Role(roleStr)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var roleStr string
	if err := row.Scan(&u.ID, &u.LoginCode, &u.Name, &roleStr, &u.PasswordHash, &u.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.Role = rbac.Role(roleStr)
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
