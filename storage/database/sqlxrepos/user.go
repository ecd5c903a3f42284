// Package sqlxrepos implements the domain repositories on Postgres via sqlx.
package sqlxrepos

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mtihani/portal/core/user"
)

const rolesSep = ","

// userRow maps the "user" table; roles are stored comma-separated.
type userRow struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	IsActive     bool      `db:"is_active"`
	Roles        string    `db:"roles"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	LastLogin    time.Time `db:"last_login"`
}

func (r userRow) toUser() user.User {
	var roles []string
	if r.Roles != "" {
		roles = strings.Split(r.Roles, rolesSep)
	}
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username,
		Email:        r.Email,
		IsActive:     r.IsActive,
		Roles:        roles,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		LastLogin:    r.LastLogin,
	}
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excluded := make([]int, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded = append(excluded, usr.ID)
	}

	query := `SELECT username, email FROM "user" WHERE (username = $1 OR email = $2)`
	args := []interface{}{username, email}
	if len(excluded) > 0 {
		var err error
		query, args, err = sqlx.In(`SELECT username, email FROM "user" WHERE (username = ? OR email = ?) AND id NOT IN (?)`, username, email, excluded)
		if err != nil {
			return err
		}
		query = repo.db.Rebind(query)
	}

	var rows []userRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return err
	}
	for _, row := range rows {
		if username != "" && row.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && row.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	row := userRow{
		Name:         usr.Name,
		Username:     usr.Username,
		Email:        usr.Email,
		IsActive:     usr.IsActive,
		Roles:        strings.Join(usr.Roles, rolesSep),
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
		LastLogin:    usr.LastLogin,
	}
	const query = `
		INSERT INTO "user" (name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login)
		VALUES (:name, :username, :email, :is_active, :roles, :password_hash, :created_at, :updated_at, :last_login)
		RETURNING id`
	stmt, err := repo.db.PrepareNamed(query)
	if err != nil {
		return user.User{}, err
	}
	defer stmt.Close()
	if err = stmt.Get(&usr.ID, row); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, `SELECT * FROM "user" ORDER BY id`); err != nil {
		return nil, err
	}
	return rowsToUsers(rows), nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	return repo.getWhere(`id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getWhere(`username = $1`, username)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getWhere(`email = $1`, email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getWhere(`username = $1 OR email = $1`, username)
}

func (repo *userRepository) getWhere(where string, args ...interface{}) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, `SELECT * FROM "user" WHERE `+where, args...)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	filter.Clean()

	where := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "?"
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, `(name ILIKE `+arg(pattern)+` OR username ILIKE `+arg(pattern)+` OR email ILIKE `+arg(pattern)+`)`)
	}
	if filter.IsActive != nil {
		where = append(where, `is_active = `+arg(*filter.IsActive))
	}
	if !filter.CreatedFrom.IsZero() {
		where = append(where, `created_at >= `+arg(filter.CreatedFrom))
	}
	if !filter.CreatedTo.IsZero() {
		where = append(where, `created_at <= `+arg(filter.CreatedTo))
	}

	query := `SELECT * FROM "user"`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY id`

	var rows []userRow
	if err := repo.db.Select(&rows, repo.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	users := rowsToUsers(rows)
	if filter.Roles != nil {
		// roles are comma-packed; prefix-match in memory
		matched := make([]user.User, 0, len(users))
		for _, usr := range users {
			if hasAnyRolePrefix(usr, filter.Roles) {
				matched = append(matched, usr)
			}
		}
		users = matched
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	set := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	arg := func(expr string, v interface{}) {
		args = append(args, v)
		set = append(set, expr)
	}

	if usr.Name != "" {
		arg(`name = ?`, usr.Name)
	}
	if usr.Username != "" {
		arg(`username = ?`, usr.Username)
	}
	if usr.Email != "" {
		arg(`email = ?`, usr.Email)
	}
	if usr.Roles != nil {
		arg(`roles = ?`, strings.Join(usr.Roles, rolesSep))
	}
	if usr.PasswordHash != nil {
		arg(`password_hash = ?`, usr.PasswordHash)
	}
	if !usr.LastLogin.IsZero() {
		arg(`last_login = ?`, usr.LastLogin)
	}
	if !usr.UpdatedAt.IsZero() {
		arg(`updated_at = ?`, usr.UpdatedAt)
	}
	if isActive != nil {
		arg(`is_active = ?`, *isActive)
	}
	if len(set) == 0 {
		return repo.GetUserByID(usr.ID)
	}

	args = append(args, usr.ID)
	query := repo.db.Rebind(`UPDATE "user" SET ` + strings.Join(set, ", ") + ` WHERE id = ?`)
	res, err := repo.db.Exec(query, args...)
	if err != nil {
		return user.User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

func (repo *userRepository) DeleteUsersByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}

func rowsToUsers(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users
}

func hasAnyRolePrefix(usr user.User, prefixes []string) bool {
	for _, prefix := range prefixes {
		if usr.RoleStartsWith(prefix) {
			return true
		}
	}
	return false
}
