package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/eventz-dev/eventz/internal/domain"
	internal_errors "github.com/eventz-dev/eventz/internal/errors"
)

const userColumns = `id, username, password_hash, email, wallet_address, role, created_at, last_login`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var username, passHash, email, wallet sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(&u.Id, &username, &passHash, &email, &wallet, &u.Role, &u.CreatedAt, &lastLogin)
	if err != nil {
		return domain.User{}, err
	}
	u.Username = username.String
	u.PassHash = passHash.String
	u.Email = email.String
	u.WalletAddress = wallet.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Users returns all identity records, newest first.
func (s *Storage) Users(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, internal_errors.NewStore("list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, internal_errors.NewStore("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, internal_errors.NewStore("list users", err)
	}
	return users, nil
}

func (s *Storage) userBy(ctx context.Context, op, where string, arg any) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NewNotFound("User not found")
		}
		return domain.User{}, internal_errors.NewStore(op, err)
	}
	return u, nil
}

func (s *Storage) UserById(ctx context.Context, id string) (domain.User, error) {
	return s.userBy(ctx, "get user", "id = $1", id)
}

func (s *Storage) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.userBy(ctx, "get user by username", "username = $1", username)
}

// UserByWallet looks up by the lowercase-normalized address.
func (s *Storage) UserByWallet(ctx context.Context, wallet string) (domain.User, error) {
	return s.userBy(ctx, "get user by wallet", "wallet_address = $1", wallet)
}

// SaveUser inserts a new identity record, assigning id and createdAt.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	user.Id = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, email, wallet_address, role, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.Id, nullable(user.Username), nullable(user.PassHash), nullable(user.Email),
		nullable(user.WalletAddress), user.Role, user.CreatedAt, user.LastLogin)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: http.StatusConflict}
		}
		return domain.User{}, internal_errors.NewStore("save user", err)
	}
	return user, nil
}

// PatchUser applies a partial update to one user record.
func (s *Storage) PatchUser(ctx context.Context, id string, patch domain.UserPatch) error {
	set := ""
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if patch.Email != nil {
		add("email", nullable(*patch.Email))
	}
	if patch.WalletAddress != nil {
		add("wallet_address", nullable(*patch.WalletAddress))
	}
	if patch.Role != nil {
		add("role", string(*patch.Role))
	}
	if set == "" {
		return nil
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", set, len(args)), args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return &internal_errors.ErrorWithStatusCode{Message: "User already exists", StatusCode: http.StatusConflict}
		}
		return internal_errors.NewStore("patch user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return internal_errors.NewStore("patch user", err)
	}
	if affected == 0 {
		return internal_errors.NewNotFound("User not found")
	}
	return nil
}

// TouchLastLogin refreshes the last_login timestamp after a successful
// authentication.
func (s *Storage) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return internal_errors.NewStore("touch last login", err)
	}
	return nil
}

func (s *Storage) RemoveUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return internal_errors.NewStore("remove user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return internal_errors.NewStore("remove user", err)
	}
	if affected == 0 {
		return internal_errors.NewNotFound("User not found")
	}
	return nil
}
