package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/dao"
	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  dao.TaskDao
	users  dao.UserDao
	roles  RoleService
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	tasks dao.TaskDao,
	users dao.UserDao,
	roles RoleService,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
		users:  users,
		roles:  roles,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	err := s.validateReviewer(ctx, params.UserID, params.ReviewerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		UserID:      params.UserID,
		ReviewerID:  params.ReviewerID,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Int64("reviewer_id", task.ReviewerID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error) {
	tasks, err := s.tasks.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select tasks by user id")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("user_id", userID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.getTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	err = s.validateReviewer(ctx, params.UserID, params.ReviewerID)
	if err != nil {
		return nil, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.DueDate = params.DueDate
	task.UserID = params.UserID
	task.ReviewerID = params.ReviewerID
	task.UpdatedAt = s.now()

	err = s.tasks.Save(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Int64("reviewer_id", task.ReviewerID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error) {
	task, err := s.getTask(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if params.CallerID == "" || params.CallerID != strconv.FormatInt(task.ReviewerID, 10) {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Str("caller_id", params.CallerID).
			Int64("reviewer_id", task.ReviewerID).
			Msg("caller is not the task reviewer")
		return nil, ErrNotTaskReviewer
	}

	if !models.IsReviewStatus(params.Status) {
		s.logger.Warn().
			Int64("task_id", task.ID).
			Str("status", params.Status).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}

	task.Status = params.Status
	task.UpdatedAt = s.now()

	err = s.tasks.Save(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	err := s.tasks.Delete(ctx, params.ID, params.UserID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", params.ID).
				Int64("user_id", params.UserID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", params.ID).
		Int64("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) getTask(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

// validateReviewer checks that reviewerID names an existing user, other than
// the assignee, who holds the Reviewer role.
func (s *taskServiceImpl) validateReviewer(ctx context.Context, userID, reviewerID int64) error {
	if userID == reviewerID {
		s.logger.Warn().
			Int64("user_id", userID).
			Msg("reviewer is the task assignee")
		return ErrReviewerIsAssignee
	}

	reviewer, err := s.users.Get(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn().
				Int64("reviewer_id", reviewerID).
				Msg("reviewer not found")
			return ErrReviewerNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("reviewer_id", reviewerID).
			Msg("failed to select reviewer")
		return err
	}

	ok, err := s.roles.HasRole(ctx, reviewer.ID, models.RoleReviewer)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn().
			Int64("reviewer_id", reviewer.ID).
			Msg("reviewer lacks reviewer role")
		return ErrReviewerLacksRole
	}
	return nil
}
