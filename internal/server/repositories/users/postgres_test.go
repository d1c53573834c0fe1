package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users .* RETURNING created_at`).
		WithArgs("u1", "a@b.c", "Alice", "argon2id$aa$bb").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	u, err := repo.Create(context.Background(), &models.User{
		ID: "u1", Email: "a@b.c", Name: "Alice", PasswordHash: "argon2id$aa$bb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.CreatedAt.Equal(now) {
		t.Fatalf("created_at not populated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{ID: "u1", Email: "a@b.c"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at FROM users`).
		WithArgs("nobody@b.c").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@b.c")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at FROM users`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow("u1", "a@b.c", "Alice", "h", now))

	u, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Alice" || u.Email != "a@b.c" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
