package v2

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/dao/daotest"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/middleware"
	"github.com/Tokamp4/task-management-system-fork/internal/models"
	"github.com/Tokamp4/task-management-system-fork/internal/policy"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

const (
	assigneeID int64 = 10
	reviewerID int64 = 20
	// secondReviewerID holds the Reviewer role but is not assigned to task 1.
	secondReviewerID int64 = 21
	plainUserID      int64 = 30
)

// caller describes the identity injected ahead of the v2 routes.
type caller struct {
	userID         int64
	nameIdentifier string
}

func newRouter(t *testing.T, who *caller) (*gin.Engine, *daotest.TaskDao) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()

	tasks := daotest.NewTaskDao(
		&models.Task{ID: 1, Title: "a", UserID: assigneeID, ReviewerID: reviewerID, Status: models.StatusPending},
		&models.Task{ID: 2, Title: "b", UserID: assigneeID, ReviewerID: reviewerID, Status: models.StatusPending},
		&models.Task{ID: 3, Title: "c", UserID: plainUserID, ReviewerID: reviewerID, Status: models.StatusPending},
	)
	users := daotest.NewUserDao()
	users.AddUser(assigneeID)
	users.AddUser(reviewerID, models.RoleReviewer)
	users.AddUser(secondReviewerID, models.RoleReviewer)
	users.AddUser(plainUserID)

	roles := services.NewRoleService(logger, users)
	h := New(logger, services.NewTaskService(logger, tasks, users, roles), nil)

	identify := func(c *gin.Context) {
		if who == nil {
			return
		}
		middleware.SetIdentity(c,
			&models.AccessClaims{NameIdentifier: who.nameIdentifier, RegisteredClaims: jwt.RegisteredClaims{Subject: "ignored"}},
			&models.Session{ID: "s", UserID: who.userID},
		)
	}

	router := gin.New()
	group := router.Group("/api/v2/tasks", identify)
	group.GET("", h.HandleGetTasks)
	group.PUT("/:id/status",
		middleware.RequirePolicy(logger, policy.Default(), roles, policy.RequireReviewer),
		h.HandleSetTaskStatus,
	)
	return router, tasks
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleGetTasks(t *testing.T) {
	tests := []struct {
		name     string
		who      *caller
		wantCode int
		wantIDs  []int64
	}{
		{name: "own tasks", who: &caller{userID: assigneeID, nameIdentifier: "10"}, wantCode: http.StatusOK, wantIDs: []int64{1, 2}},
		{name: "no tasks", who: &caller{userID: reviewerID, nameIdentifier: "20"}, wantCode: http.StatusOK, wantIDs: []int64{}},
		{name: "missing claim", who: &caller{userID: assigneeID}, wantCode: http.StatusUnauthorized},
		{name: "non-integer claim", who: &caller{userID: assigneeID, nameIdentifier: "alice"}, wantCode: http.StatusUnauthorized},
		{name: "anonymous", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, tt.who)
			rec := doJSON(router, http.MethodGet, "/api/v2/tasks", nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var got []taskResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal tasks: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id || got[i].UserID != assigneeID {
					t.Fatalf("unexpected task at %d: %+v", i, got[i])
				}
			}
		})
	}
}

func TestHandleSetTaskStatus(t *testing.T) {
	tests := []struct {
		name       string
		who        *caller
		path       string
		status     string
		wantCode   int
		wantMsg    string
		wantStatus string
	}{
		{name: "anonymous", path: "/api/v2/tasks/1/status", status: models.StatusCompleted, wantCode: http.StatusUnauthorized, wantStatus: models.StatusPending},
		{name: "caller without role", who: &caller{userID: plainUserID, nameIdentifier: "30"}, path: "/api/v2/tasks/1/status", status: models.StatusCompleted, wantCode: http.StatusForbidden, wantStatus: models.StatusPending},
		{name: "missing task", who: &caller{userID: reviewerID, nameIdentifier: "20"}, path: "/api/v2/tasks/99/status", status: models.StatusCompleted, wantCode: http.StatusNotFound, wantStatus: models.StatusPending},
		{name: "non-integer id", who: &caller{userID: reviewerID, nameIdentifier: "20"}, path: "/api/v2/tasks/one/status", status: models.StatusCompleted, wantCode: http.StatusBadRequest, wantMsg: "invalid task id", wantStatus: models.StatusPending},
		{name: "other reviewer", who: &caller{userID: secondReviewerID, nameIdentifier: "21"}, path: "/api/v2/tasks/1/status", status: models.StatusCompleted, wantCode: http.StatusForbidden, wantMsg: httperr.MsgNotTaskReviewer, wantStatus: models.StatusPending},
		{name: "missing name identifier", who: &caller{userID: reviewerID}, path: "/api/v2/tasks/1/status", status: models.StatusCompleted, wantCode: http.StatusForbidden, wantMsg: httperr.MsgNotTaskReviewer, wantStatus: models.StatusPending},
		{name: "invalid status", who: &caller{userID: reviewerID, nameIdentifier: "20"}, path: "/api/v2/tasks/1/status", status: "Pending", wantCode: http.StatusBadRequest, wantMsg: httperr.MsgInvalidTaskStatus, wantStatus: models.StatusPending},
		{name: "assigned reviewer", who: &caller{userID: reviewerID, nameIdentifier: "20"}, path: "/api/v2/tasks/1/status", status: models.StatusCompleted, wantCode: http.StatusOK, wantStatus: models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, tasks := newRouter(t, tt.who)
			rec := doJSON(router, http.MethodPut, tt.path, map[string]string{"status": tt.status})
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}

			var body map[string]string
			if tt.wantMsg != "" || tt.wantCode == http.StatusOK {
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("unmarshal body: %v", err)
				}
			}
			if tt.wantMsg != "" && body["error"] != tt.wantMsg {
				t.Fatalf("expected error %q, got %q", tt.wantMsg, body["error"])
			}
			if tt.wantCode == http.StatusOK && body["message"] != msgTaskStatusUpdated {
				t.Fatalf("expected message %q, got %q", msgTaskStatusUpdated, body["message"])
			}
			if got := tasks.Tasks[1].Status; got != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, got)
			}
		})
	}
}
