// Package v2 serves the task routes that identify the caller by the
// name-identifier claim.
package v2

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

type Handler interface {
	HandleGetTasks(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
}

type StatusObserver interface {
	ObserveTaskStatus(status string)
}

type nopObserver struct{}

func (nopObserver) ObserveTaskStatus(string) {}

type handlerImpl struct {
	logger   zerolog.Logger
	tasks    services.TaskService
	observer StatusObserver
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	observer StatusObserver,
) Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &handlerImpl{
		logger:   logger,
		tasks:    taskService,
		observer: observer,
	}
}
