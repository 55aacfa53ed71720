package httperr

import (
	"errors"
	"net/http"

	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

// Client-facing messages for task validation failures.
const (
	MsgReviewerIsAssignee = "Reviewer cannot be the same as the User."
	MsgReviewerNotFound   = "Reviewer not found."
	MsgReviewerLacksRole  = "Selected reviewer does not have 'Reviewer' role."
	MsgNotTaskReviewer    = "Only the assigned reviewer can update the status of this task."
	MsgInvalidTaskStatus  = "Invalid status value. Allowed values are: Completed, Needs Improvement, Denied."
)

// FromTaskError maps an error returned by services.TaskService to the
// response written for it. Unknown errors become 500.
func FromTaskError(err error) APIError {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return NewNotFound(services.ErrTaskNotFound.Error())
	case errors.Is(err, services.ErrReviewerIsAssignee):
		return NewBadRequest(MsgReviewerIsAssignee)
	case errors.Is(err, services.ErrReviewerNotFound):
		return NewBadRequest(MsgReviewerNotFound)
	case errors.Is(err, services.ErrReviewerLacksRole):
		return NewBadRequest(MsgReviewerLacksRole)
	case errors.Is(err, services.ErrNotTaskReviewer):
		return NewForbidden(MsgNotTaskReviewer)
	case errors.Is(err, services.ErrInvalidTaskStatus):
		return NewBadRequest(MsgInvalidTaskStatus)
	default:
		return NewStatusText(http.StatusInternalServerError)
	}
}
