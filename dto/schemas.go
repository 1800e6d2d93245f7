package dto

import (
	"github.com/upb/taskhub/models"
	"github.com/upb/taskhub/utils"
)

var (
	memberRoles      = []string{string(models.RoleAdmin), string(models.RoleMember), string(models.RoleViewer)}
	projectStatuses  = []string{string(models.ProjectActive), string(models.ProjectArchived)}
	taskStatuses     = []string{string(models.TaskTodo), string(models.TaskInProgress), string(models.TaskReview), string(models.TaskDone)}
	taskPriorities   = []string{string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh), string(models.PriorityUrgent)}
	nonNegativeIndex = utils.Bound(0)
)

// CreateWorkspaceSchema validates CreateWorkspaceRequest
var CreateWorkspaceSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"name":        {Required: true, MinLength: 1, MaxLength: 100},
		"description": {MaxLength: 1000},
	},
}

// AddWorkspaceMemberSchema validates AddWorkspaceMemberRequest. The owner role is not grantable.
var AddWorkspaceMemberSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"email": {Required: true, Type: utils.TypeEmail, MaxLength: 320},
		"role":  {Enum: memberRoles},
	},
}

// CreateProjectSchema validates CreateProjectRequest
var CreateProjectSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"name":        {Required: true, MinLength: 1, MaxLength: 120},
		"description": {MaxLength: 2000},
	},
}

// UpdateProjectSchema validates UpdateProjectRequest
var UpdateProjectSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"name":        {MinLength: 1, MaxLength: 120},
		"description": {MaxLength: 2000},
		"status":      {Enum: projectStatuses},
	},
	MinFields: 1,
}

// CreateBoardSchema validates CreateBoardRequest
var CreateBoardSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"name":     {Required: true, MinLength: 1, MaxLength: 80},
		"position": {Type: utils.TypeInteger, Min: nonNegativeIndex},
	},
}

// CreateTaskSchema validates CreateTaskRequest
var CreateTaskSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"title":       {Required: true, MinLength: 1, MaxLength: 200},
		"description": {MaxLength: 5000},
		"status":      {Enum: taskStatuses},
		"priority":    {Enum: taskPriorities},
		"assignee_id": {Type: utils.TypeUUID, Nullable: true},
		"due_date":    {Type: utils.TypeDateTime, Nullable: true},
		"position":    {Type: utils.TypeInteger, Min: nonNegativeIndex},
	},
}

// UpdateTaskSchema validates UpdateTaskRequest
var UpdateTaskSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"title":       {MinLength: 1, MaxLength: 200},
		"description": {MaxLength: 5000},
		"status":      {Enum: taskStatuses},
		"priority":    {Enum: taskPriorities},
		"assignee_id": {Type: utils.TypeUUID, Nullable: true},
		"due_date":    {Type: utils.TypeDateTime, Nullable: true},
		"position":    {Type: utils.TypeInteger, Min: nonNegativeIndex},
	},
	MinFields: 1,
}

// CreateCommentSchema validates CreateCommentRequest
var CreateCommentSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"body": {Required: true, MinLength: 1, MaxLength: 5000},
	},
}

// UpdateProfileSchema validates UpdateProfileRequest
var UpdateProfileSchema = utils.Schema{
	Fields: map[string]utils.FieldRule{
		"display_name": {MaxLength: 100},
		"photo_url":    {Type: utils.TypeURL, Nullable: true, MaxLength: 2048},
	},
	MinFields: 1,
}
