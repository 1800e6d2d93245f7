package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/repositories"
	"go.uber.org/zap"
)

var taskRowColumns = []string{
	"id", "board_id", "project_id", "workspace_id", "title", "description", "status", "priority",
	"assignee_id", "due_date", "position", "created_by", "created_at", "updated_at",
}

func taskRow(id, boardID uuid.UUID, assignee interface{}) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), boardID.String(), uuid.NewString(), uuid.NewString(), "Write docs", "", "todo", "high",
		assignee, nil, 1, uuid.NewString(), now, now,
	}
}

func TestTaskRepository_ListByBoard(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())
		boardID := uuid.New()
		assignee := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM tasks WHERE board_id = $1 ORDER BY position, created_at LIMIT $2 OFFSET $3`)).
			WithArgs(boardID, repositories.DefaultPageLimit, 0).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(taskRow(uuid.New(), boardID, nil)...).
				AddRow(taskRow(uuid.New(), boardID, assignee.String())...))

		tasks, err := repo.ListByBoard(context.Background(), boardID, repositories.TaskFilter{})

		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Nil(t, tasks[0].AssigneeID)
		require.NotNil(t, tasks[1].AssigneeID)
		assert.Equal(t, assignee, *tasks[1].AssigneeID)
		assert.Equal(t, models.PriorityHigh, tasks[1].Priority)
		assert.Nil(t, tasks[1].DueDate)
	})

	t.Run("status and assignee filters", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())
		boardID := uuid.New()
		assignee := uuid.New()
		status := models.TaskDone

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE board_id = $1 AND status = $2 AND assignee_id = $3 ORDER BY position, created_at LIMIT $4 OFFSET $5`)).
			WithArgs(boardID, status, assignee, 10, 20).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		tasks, err := repo.ListByBoard(context.Background(), boardID, repositories.TaskFilter{
			Status:     &status,
			AssigneeID: &assignee,
			Page:       repositories.Page{Limit: 10, Offset: 20},
		})

		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())
		boardID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $2 OFFSET $3`)).
			WithArgs(boardID, repositories.MaxPageLimit, 5).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		_, err := repo.ListByBoard(context.Background(), boardID, repositories.TaskFilter{
			Page: repositories.Page{Limit: 500, Offset: 5},
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestNotificationRepository_ListForUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db, zap.NewNop())
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications`)).
		WithArgs(userID, true, repositories.MaxPageLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "title", "body", "resource_type", "resource_id", "read_at", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "task_assigned", "Assigned", "", "task", uuid.NewString(), nil, time.Now()))

	list, err := repo.ListForUser(context.Background(), userID, true, repositories.Page{Limit: 500})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationTaskAssigned, list[0].Type)
	assert.False(t, list[0].IsRead())
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationRepository(db, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`SET read_at = COALESCE(read_at, $2)`)).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkRead(context.Background(), id))
}

func TestActivityRepository(t *testing.T) {
	t.Run("insert carries details and request id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActivityRepository(db, zap.NewNop())

		log := models.NewActivityLog(uuid.New(), uuid.New(), models.ActivityTaskCreated, models.ResourceTask, uuid.New()).
			WithDetails(map[string]interface{}{"title": "Write docs"})
		log.RequestID = "req-1"

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activity_logs`)).
			WithArgs(log.ID, log.WorkspaceID, log.ActorID, log.Action, log.ResourceType, log.ResourceID,
				[]byte(log.Details), "req-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Insert(context.Background(), log))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list decodes details", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActivityRepository(db, zap.NewNop())
		wsID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM activity_logs`)).
			WithArgs(wsID, 10, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "actor_id", "action", "resource_type", "resource_id", "details", "request_id", "created_at"}).
				AddRow(uuid.NewString(), wsID.String(), uuid.NewString(), "task_created", "task", uuid.NewString(), []byte(`{"title":"x"}`), "req-1", time.Now()).
				AddRow(uuid.NewString(), wsID.String(), uuid.NewString(), "board_created", "board", uuid.NewString(), nil, "", time.Now()))

		logs, err := repo.ListByWorkspace(context.Background(), wsID, repositories.Page{Limit: 10, Offset: 20})

		require.NoError(t, err)
		require.Len(t, logs, 2)
		var details map[string]string
		require.NoError(t, json.Unmarshal(logs[0].Details, &details))
		assert.Equal(t, "x", details["title"])
		assert.Empty(t, logs[1].Details)
	})
}

func TestDB_InitSchema(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_firebase_uid`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
