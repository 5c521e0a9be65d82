package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, uid string, user User) (User, error)
	DeleteUser(ctx context.Context, uid string) error
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO users (uid, display_name, school, timezone, week_first_day, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`
	_, err := u.db.ExecContext(ctx, query,
		user.Uid,
		user.DisplayName,
		user.School,
		user.Settings.Timezone,
		int(user.Settings.WeekFirstDay),
		time.Now().UnixMilli(),
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT uid, display_name, school, timezone, week_first_day FROM users WHERE uid = ?`

	var user User
	var weekFirstDay int
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(
			&user.Uid,
			&user.DisplayName,
			&user.School,
			&user.Settings.Timezone,
			&weekFirstDay,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Settings.WeekFirstDay = time.Weekday(weekFirstDay)
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, uid string, user User) (User, error) {
	query := `UPDATE users SET display_name = ?, school = ?, timezone = ?, week_first_day = ? WHERE uid = ?`
	result, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.School,
		user.Settings.Timezone,
		int(user.Settings.WeekFirstDay),
		uid,
	)
	if err != nil {
		return User{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return User{}, ErrUserNotFound
	}
	user.Uid = uid
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, uid string) error {
	_, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE uid = ?`, uid)
	if err != nil {
		log.Errorf("failed to delete user %s: %v", uid, err)
		return err
	}
	return nil
}
