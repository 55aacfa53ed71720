package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

func TestAbortWritesErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Abort(c, NewForbidden("nope"))

	if !c.IsAborted() {
		t.Fatal("expected context to be aborted")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error"] != "nope" {
		t.Fatalf("expected error message %q, got %q", "nope", body["error"])
	}
}

func TestNewStatusText(t *testing.T) {
	err := NewStatusText(http.StatusInternalServerError)
	if err.Code != http.StatusInternalServerError || err.Error() != "Internal Server Error" {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestFromTaskError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{services.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{services.ErrReviewerIsAssignee, http.StatusBadRequest, MsgReviewerIsAssignee},
		{services.ErrReviewerNotFound, http.StatusBadRequest, MsgReviewerNotFound},
		{services.ErrReviewerLacksRole, http.StatusBadRequest, MsgReviewerLacksRole},
		{services.ErrNotTaskReviewer, http.StatusForbidden, MsgNotTaskReviewer},
		{services.ErrInvalidTaskStatus, http.StatusBadRequest, MsgInvalidTaskStatus},
		{fmt.Errorf("wrapped: %w", services.ErrNotTaskReviewer), http.StatusForbidden, MsgNotTaskReviewer},
		{errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		got := FromTaskError(tt.err)
		if got.Code != tt.wantCode || got.Message != tt.wantMsg {
			t.Errorf("FromTaskError(%v) = %+v, want %d %q", tt.err, got, tt.wantCode, tt.wantMsg)
		}
	}
}
