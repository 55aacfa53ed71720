package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleAssignRole(c *gin.Context)
}

// StatusObserver is notified of every accepted task status change.
type StatusObserver interface {
	ObserveTaskStatus(status string)
}

type nopObserver struct{}

func (nopObserver) ObserveTaskStatus(string) {}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	tasks    services.TaskService
	roles    services.RoleService
	observer StatusObserver
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	roleService services.RoleService,
	observer StatusObserver,
) Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		tasks:    taskService,
		roles:    roleService,
		observer: observer,
	}
}
