package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamecatalog/internal/model"
)

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "inserted"},
		{name: "duplicate email", execErr: &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, wantErr: gorm.ErrDuplicatedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)

			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`"))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			user := &model.User{Email: "a@test.com", FirstName: "Ann", LastName: "Lee", PasswordHash: "hash"}
			err := repo.Create(context.Background(), user)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, user.ID)
				assert.Equal(t, model.DefaultPictureURL, user.PictureURL)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "password_hash"}).
			AddRow("u-1", "a@test.com", "Ann", "hash"))

	user, err := repo.FindByEmail(context.Background(), "a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.FindByEmail(context.Background(), "ghost@test.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(context.Background(), "u-404", "Ann", "Lee")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AppendLogin_TrimsHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `login_events`")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id` FROM `login_events` WHERE user_id = ? ORDER BY id DESC LIMIT")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9).AddRow(8).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `login_events` WHERE user_id = ? AND id NOT IN (?,?,?)")).
		WithArgs("u-1", 9, 8, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AppendLogin(context.Background(), &model.LoginEvent{UserID: "u-1"}, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_AppendLogin_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `login_events`")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.AppendLogin(context.Background(), &model.LoginEvent{UserID: "u-1"}, 5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RecentLogins(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `login_events` WHERE user_id = ? ORDER BY id DESC LIMIT")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "latitude", "longitude"}).
			AddRow(2, "u-1", 42.7, 23.3).
			AddRow(1, "u-1", nil, nil))

	events, err := repo.RecentLogins(context.Background(), "u-1", 5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].HasLocation())
	assert.False(t, events[1].HasLocation())
	assert.NoError(t, mock.ExpectationsWereMet())
}
