package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return WrapDB(sqlDB, zap.NewNop()), mock
}

var userRowColumns = []string{"id", "firebase_uid", "email", "display_name", "photo_url", "created_at", "updated_at"}

func TestUserRepository_GetByFirebaseUID(t *testing.T) {
	query := regexp.QuoteMeta(`FROM users WHERE firebase_uid = $1`)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		id := uuid.New()
		now := time.Now()
		mock.ExpectQuery(query).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(id.String(), "p1", "a@x.com", "Ada", "", now, now))

		user, err := repo.GetByFirebaseUID(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "p1", user.FirebaseUID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		mock.ExpectQuery(query).WithArgs("p2").WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByFirebaseUID(context.Background(), "p2")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("connection failure is not a miss", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		mock.ExpectQuery(query).WithArgs("p1").WillReturnError(errors.New("connection reset by peer"))

		_, err := repo.GetByFirebaseUID(context.Background(), "p1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		user := models.NewUser("p1", "a@x.com", "Ada")

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(user.ID, "p1", "a@x.com", "Ada", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate firebase uid", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_firebase_uid"})

		err := repo.Create(context.Background(), models.NewUser("p1", "a@x.com", ""))

		assert.ErrorIs(t, err, repositories.ErrConflict)
		assert.Contains(t, err.Error(), "idx_users_firebase_uid")
	})
}

func TestUserRepository_LinkFirebaseUID(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE users SET firebase_uid = $2`)

	t.Run("linked", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectExec(query).WithArgs(id, "p9", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.LinkFirebaseUID(context.Background(), id, "p9"))
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.LinkFirebaseUID(context.Background(), uuid.New(), "p9")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestTransactionManager_InTransaction(t *testing.T) {
	t.Run("commits and routes repositories through the tx", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())
		workspaces := NewWorkspaceRepository(db, zap.NewNop())

		ws := models.NewWorkspace("Acme", "", uuid.New())
		member := models.NewWorkspaceMember(ws.ID, ws.OwnerID, models.RoleOwner)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO workspaces`)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO workspace_members`)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
			if err := workspaces.Create(ctx, ws); err != nil {
				return err
			}
			return workspaces.AddMember(ctx, member)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())
		workspaces := NewWorkspaceRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO workspaces`)).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := tm.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
			return workspaces.Create(ctx, models.NewWorkspace("Acme", "", uuid.New()))
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db, zap.NewNop())
	workspaces := NewWorkspaceRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO workspaces`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.InTransaction(context.Background(), func(ctx context.Context, outer repositories.Transaction) error {
		return tm.InTransaction(ctx, func(ctx context.Context, inner repositories.Transaction) error {
			assert.Same(t, outer, inner)
			return workspaces.Create(ctx, models.NewWorkspace("Acme", "", uuid.New()))
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
