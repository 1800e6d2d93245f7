package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/utils"
)

func fieldCodes(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	codes := make(map[string]string, len(verr.Errors))
	for _, fe := range verr.Errors {
		codes[fe.Field] = fe.Code
	}
	return codes
}

func TestDecode_CreateTask(t *testing.T) {
	assignee := uuid.New()

	t.Run("full body", func(t *testing.T) {
		var req CreateTaskRequest
		body := `{"title":"Write docs","priority":"high","assignee_id":"` + assignee.String() +
			`","due_date":"2026-11-01T09:00:00Z","position":2}`

		require.NoError(t, Decode([]byte(body), CreateTaskSchema, &req))

		assert.Equal(t, "Write docs", req.Title)
		require.NotNil(t, req.Priority)
		assert.Equal(t, models.PriorityHigh, *req.Priority)
		assert.Nil(t, req.Status)
		require.NotNil(t, req.AssigneeID)
		assert.Equal(t, assignee, *req.AssigneeID)
		require.NotNil(t, req.DueDate)
		assert.Equal(t, 2026, req.DueDate.Year())
		require.NotNil(t, req.Position)
		assert.Equal(t, 2, *req.Position)
	})

	t.Run("schema errors are reported per field", func(t *testing.T) {
		var req CreateTaskRequest
		err := Decode([]byte(`{"title":"   ","priority":"someday","assignee_id":"nope","position":-1,"color":"red"}`),
			CreateTaskSchema, &req)

		codes := fieldCodes(t, err)
		assert.Equal(t, utils.CodeRequired, codes["title"])
		assert.Equal(t, utils.CodeEnum, codes["priority"])
		assert.Equal(t, utils.CodeFormat, codes["assignee_id"])
		assert.Equal(t, utils.CodeMin, codes["position"])
		assert.Equal(t, utils.CodeUnknownField, codes["color"])
	})

	t.Run("fractional position fails at decode", func(t *testing.T) {
		var req CreateTaskRequest
		err := Decode([]byte(`{"title":"x","position":1.5}`), CreateTaskSchema, &req)

		assert.Equal(t, utils.CodeType, fieldCodes(t, err)["position"])
	})

	t.Run("not an object", func(t *testing.T) {
		var req CreateTaskRequest
		err := Decode([]byte(`["title"]`), CreateTaskSchema, &req)
		assert.True(t, utils.IsValidationError(err))
	})
}

func TestDecode_UpdateTask(t *testing.T) {
	t.Run("null clears, absent leaves alone", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, Decode([]byte(`{"assignee_id":null,"status":"done"}`), UpdateTaskSchema, &req))

		assert.True(t, req.AssigneeID.Set)
		assert.Nil(t, req.AssigneeID.Value)
		assert.False(t, req.DueDate.Set)
		require.NotNil(t, req.Status)
		assert.Equal(t, models.TaskDone, *req.Status)
		assert.Nil(t, req.Title)
	})

	t.Run("empty body", func(t *testing.T) {
		var req UpdateTaskRequest
		err := Decode([]byte(`{}`), UpdateTaskSchema, &req)

		var verr *utils.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, utils.CodeMinFields, verr.Errors[0].Code)
	})

	t.Run("whitespace title", func(t *testing.T) {
		var req UpdateTaskRequest
		err := Decode([]byte(`{"title":"   "}`), UpdateTaskSchema, &req)
		assert.Equal(t, utils.CodeRequired, fieldCodes(t, err)["title"])
	})

	t.Run("empty title", func(t *testing.T) {
		var req UpdateTaskRequest
		err := Decode([]byte(`{"title":""}`), UpdateTaskSchema, &req)
		assert.Equal(t, utils.CodeMinLength, fieldCodes(t, err)["title"])
	})
}

func TestDecode_AddWorkspaceMember(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode map[string]string
	}{
		{name: "default role", body: `{"email":"b@x.com"}`},
		{name: "admin", body: `{"email":"b@x.com","role":"admin"}`},
		{name: "owner not grantable", body: `{"email":"b@x.com","role":"owner"}`, wantCode: map[string]string{"role": utils.CodeEnum}},
		{name: "bad email", body: `{"email":"b-at-x"}`, wantCode: map[string]string{"email": utils.CodeFormat}},
		{name: "missing email", body: `{"role":"viewer"}`, wantCode: map[string]string{"email": utils.CodeRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddWorkspaceMemberRequest
			err := Decode([]byte(tt.body), AddWorkspaceMemberSchema, &req)
			if tt.wantCode == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, fieldCodes(t, err))
		})
	}
}

func TestDecode_UpdateProfile(t *testing.T) {
	var req UpdateProfileRequest
	require.NoError(t, Decode([]byte(`{"photo_url":null}`), UpdateProfileSchema, &req))
	assert.True(t, req.PhotoURL.Set)
	assert.Nil(t, req.PhotoURL.Value)
	assert.Nil(t, req.DisplayName)

	err := Decode([]byte(`{"photo_url":"ftp://x"}`), UpdateProfileSchema, &req)
	assert.Equal(t, utils.CodeFormat, fieldCodes(t, err)["photo_url"])
}

func TestOptional(t *testing.T) {
	o := Some(3)
	assert.True(t, o.Set)
	assert.Equal(t, 3, *o.Value)

	n := Null[int]()
	assert.True(t, n.Set)
	assert.Nil(t, n.Value)

	var zero Optional[int]
	assert.False(t, zero.Set)
}
