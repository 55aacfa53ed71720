package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/dao/daotest"
	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

const (
	assigneeID  int64 = 10
	reviewerID  int64 = 20
	otherUserID int64 = 30
)

func newTestTaskService(tasks *daotest.TaskDao, users *daotest.UserDao) *taskServiceImpl {
	logger := zerolog.Nop()
	svc := NewTaskService(logger, tasks, users, NewRoleService(logger, users)).(*taskServiceImpl)
	return svc
}

func seededUsers() *daotest.UserDao {
	users := daotest.NewUserDao()
	users.AddUser(assigneeID)
	users.AddUser(reviewerID, models.RoleReviewer)
	users.AddUser(otherUserID)
	return users
}

func seededTask() *models.Task {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Task{
		ID:          1,
		Title:       "write report",
		Description: "quarterly",
		DueDate:     created.Add(72 * time.Hour),
		UserID:      assigneeID,
		ReviewerID:  reviewerID,
		Status:      models.StatusPending,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestUpdateTaskValidation(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		params  UpdateTaskParams
		wantErr error
	}{
		{
			name:    "missing task",
			params:  UpdateTaskParams{ID: 99, Title: "x", DueDate: due, UserID: assigneeID, ReviewerID: reviewerID},
			wantErr: ErrTaskNotFound,
		},
		{
			name:    "reviewer is assignee",
			params:  UpdateTaskParams{ID: 1, Title: "x", DueDate: due, UserID: reviewerID, ReviewerID: reviewerID},
			wantErr: ErrReviewerIsAssignee,
		},
		{
			name:    "unknown reviewer",
			params:  UpdateTaskParams{ID: 1, Title: "x", DueDate: due, UserID: assigneeID, ReviewerID: 404},
			wantErr: ErrReviewerNotFound,
		},
		{
			name:    "reviewer without role",
			params:  UpdateTaskParams{ID: 1, Title: "x", DueDate: due, UserID: assigneeID, ReviewerID: otherUserID},
			wantErr: ErrReviewerLacksRole,
		},
		{
			// not-found wins over the same-user check
			name:    "missing task and same user",
			params:  UpdateTaskParams{ID: 99, Title: "x", DueDate: due, UserID: reviewerID, ReviewerID: reviewerID},
			wantErr: ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := seededTask()
			tasks := daotest.NewTaskDao(seededTask())
			svc := newTestTaskService(tasks, seededUsers())

			_, err := svc.UpdateTask(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tasks.Saves != 0 {
				t.Fatalf("expected no saves, got %d", tasks.Saves)
			}
			if got := *tasks.Tasks[1]; got != *original {
				t.Fatalf("task modified on rejected update: %+v", got)
			}
		})
	}
}

func TestUpdateTaskOverwritesFields(t *testing.T) {
	tasks := daotest.NewTaskDao(seededTask())
	users := seededUsers()
	users.AddUser(40, models.RoleReviewer)
	svc := newTestTaskService(tasks, users)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateTask(context.Background(), UpdateTaskParams{
		ID:          1,
		Title:       "rewrite report",
		Description: "annual",
		DueDate:     due,
		UserID:      otherUserID,
		ReviewerID:  40,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got := tasks.Tasks[1]
	if got.Title != "rewrite report" || got.Description != "annual" || !got.DueDate.Equal(due) {
		t.Fatalf("fields not overwritten: %+v", got)
	}
	if got.UserID != otherUserID || got.ReviewerID != 40 {
		t.Fatalf("ids not overwritten: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at %v, got %v", now, got.UpdatedAt)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("status changed by full update: %q", got.Status)
	}
}

func TestUpdateTaskStatusChecks(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		callerID string
		status   string
		wantErr  error
	}{
		{name: "missing task", id: 99, callerID: "20", status: models.StatusCompleted, wantErr: ErrTaskNotFound},
		{name: "missing task beats bad status", id: 99, callerID: "30", status: "Done", wantErr: ErrTaskNotFound},
		{name: "not reviewer", id: 1, callerID: "30", status: models.StatusCompleted, wantErr: ErrNotTaskReviewer},
		{name: "empty caller", id: 1, callerID: "", status: models.StatusCompleted, wantErr: ErrNotTaskReviewer},
		{name: "not reviewer beats bad status", id: 1, callerID: "30", status: "Done", wantErr: ErrNotTaskReviewer},
		{name: "invalid status", id: 1, callerID: "20", status: "Done", wantErr: ErrInvalidTaskStatus},
		{name: "pending is not a review status", id: 1, callerID: "20", status: models.StatusPending, wantErr: ErrInvalidTaskStatus},
		{name: "wrong case", id: 1, callerID: "20", status: "completed", wantErr: ErrInvalidTaskStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := daotest.NewTaskDao(seededTask())
			svc := newTestTaskService(tasks, seededUsers())

			_, err := svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{
				ID:       tt.id,
				CallerID: tt.callerID,
				Status:   tt.status,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tasks.Tasks[1].Status != models.StatusPending {
				t.Fatalf("status modified on rejected update: %q", tasks.Tasks[1].Status)
			}
		})
	}
}

func TestUpdateTaskStatusAllowedValues(t *testing.T) {
	for _, status := range models.ReviewStatuses {
		t.Run(status, func(t *testing.T) {
			tasks := daotest.NewTaskDao(seededTask())
			svc := newTestTaskService(tasks, seededUsers())
			before := tasks.Tasks[1].UpdatedAt

			task, err := svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{
				ID:       1,
				CallerID: "20",
				Status:   status,
			})
			if err != nil {
				t.Fatalf("update status failed: %v", err)
			}
			if task.Status != status || tasks.Tasks[1].Status != status {
				t.Fatalf("expected status %q, got %q", status, tasks.Tasks[1].Status)
			}
			if !tasks.Tasks[1].UpdatedAt.After(before) {
				t.Fatalf("updated_at did not advance: %v", tasks.Tasks[1].UpdatedAt)
			}
		})
	}
}

func TestUpdateTaskStatusOnlyAssignedReviewer(t *testing.T) {
	const r1, r2 int64 = 20, 21
	users := seededUsers()
	users.AddUser(r2, models.RoleReviewer)
	tasks := daotest.NewTaskDao(&models.Task{ID: 1, UserID: assigneeID, ReviewerID: r1, Status: models.StatusPending})
	svc := newTestTaskService(tasks, users)

	_, err := svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{ID: 1, CallerID: "21", Status: models.StatusCompleted})
	if !errors.Is(err, ErrNotTaskReviewer) {
		t.Fatalf("expected %v for other reviewer, got %v", ErrNotTaskReviewer, err)
	}
	if tasks.Tasks[1].Status != models.StatusPending {
		t.Fatalf("status changed by other reviewer: %q", tasks.Tasks[1].Status)
	}

	_, err = svc.UpdateTaskStatus(context.Background(), UpdateTaskStatusParams{ID: 1, CallerID: "20", Status: models.StatusCompleted})
	if err != nil {
		t.Fatalf("assigned reviewer rejected: %v", err)
	}
	if tasks.Tasks[1].Status != models.StatusCompleted {
		t.Fatalf("expected %q, got %q", models.StatusCompleted, tasks.Tasks[1].Status)
	}
}

func TestCreateTask(t *testing.T) {
	tasks := daotest.NewTaskDao()
	svc := newTestTaskService(tasks, seededUsers())

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		Title:      "new",
		DueDate:    time.Now().Add(time.Hour),
		UserID:     assigneeID,
		ReviewerID: reviewerID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.ID == 0 || task.Status != models.StatusPending {
		t.Fatalf("unexpected task: %+v", task)
	}

	_, err = svc.CreateTask(context.Background(), CreateTaskParams{
		Title:      "bad",
		UserID:     assigneeID,
		ReviewerID: otherUserID,
	})
	if !errors.Is(err, ErrReviewerLacksRole) {
		t.Fatalf("expected %v, got %v", ErrReviewerLacksRole, err)
	}
	if len(tasks.Tasks) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(tasks.Tasks))
	}
}

func TestGetTasksByUserIDAndDelete(t *testing.T) {
	other := seededTask()
	other.ID = 2
	other.UserID = otherUserID
	tasks := daotest.NewTaskDao(seededTask(), other)
	svc := newTestTaskService(tasks, seededUsers())

	list, err := svc.GetTasksByUserID(context.Background(), assigneeID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}

	err = svc.DeleteTask(context.Background(), DeleteTaskParams{ID: 2, UserID: assigneeID})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected %v deleting a foreign task, got %v", ErrTaskNotFound, err)
	}
	if err = svc.DeleteTask(context.Background(), DeleteTaskParams{ID: 1, UserID: assigneeID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := tasks.Tasks[1]; ok {
		t.Fatal("task still stored after delete")
	}
}
