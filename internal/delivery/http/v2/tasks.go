package v2

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/middleware"
	"github.com/Tokamp4/task-management-system-fork/internal/models"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

const msgTaskStatusUpdated = "Task status updated successfully."

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	UserID      int64     `json:"user_id"`
	ReviewerID  int64     `json:"reviewer_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		UserID:      task.UserID,
		ReviewerID:  task.ReviewerID,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

// nameIdentifier returns the raw name-identifier claim of the caller.
func nameIdentifier(c *gin.Context) string {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return ""
	}
	return claims.NameIdentifier
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	raw := nameIdentifier(c)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("name_identifier", raw).
			Msg("missing or non-integer name identifier")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to get tasks")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", c.Param("id")).
			Msg("invalid task id")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidTaskID.Error()))
		return
	}

	var req setTaskStatusRequest
	err = c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:       taskID,
		CallerID: nameIdentifier(c),
		Status:   req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task status")
		httperr.Abort(c, httperr.FromTaskError(err))
		return
	}

	h.observer.ObserveTaskStatus(task.Status)
	c.JSON(http.StatusOK, gin.H{"message": msgTaskStatusUpdated})
}
