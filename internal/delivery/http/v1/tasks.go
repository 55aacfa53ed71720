package v1

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

type getTaskResponse struct {
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

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
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

type taskRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	UserID      int64     `json:"user_id" binding:"required"`
	ReviewerID  int64     `json:"reviewer_id" binding:"required"`
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		ReviewerID:  req.ReviewerID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		httperr.Abort(c, httperr.FromTaskError(err))
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req taskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}

	_, err = h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		ReviewerID:  req.ReviewerID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task")
		httperr.Abort(c, httperr.FromTaskError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleSetTaskStatus identifies the caller by the "sub" claim.
func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}

	var callerID string
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		callerID = claims.Subject
	}

	task, err := h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:       taskID,
		CallerID: callerID,
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
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		httperr.Abort(c, httperr.FromTaskError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) taskIDParam(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", c.Param("id")).
			Msg("invalid task id")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidTaskID.Error()))
		return 0, false
	}
	return taskID, true
}
