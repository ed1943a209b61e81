package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/small-engineer/user-crud/internal/domain"
)

// Schema is the users table layout this repository expects. The service
// does not apply it; operators run it once per database.
//
//go:embed schema.sql
var Schema string

// ER_DUP_ENTRY
const errDupEntry = 1062

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, age FROM users ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return us, nil
}

func (r *UserRepo) FindOne(ctx context.Context, id domain.UserID) (domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, name, age FROM users WHERE id = ?", id)
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Age)
	if err == sql.ErrNoRows {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) (bool, error) {
	_, err := r.db.ExecContext(ctx, "INSERT INTO users (id, name, age) VALUES (?, ?, ?)", u.ID, u.Name, u.Age)
	if isDupEntry(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDupEntry
}
