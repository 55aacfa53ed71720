package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

type TaskDao interface {
	Create(ctx context.Context, task *models.Task) error
	Get(ctx context.Context, id int64) (*models.Task, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Task, error)
	// Save overwrites every column of an existing task.
	Save(ctx context.Context, task *models.Task) error
	// Delete removes the task only if it is assigned to userID.
	Delete(ctx context.Context, id, userID int64) error
}

type taskDaoImpl struct{ db *gorm.DB }

func NewTaskDao(db *gorm.DB) TaskDao { return &taskDaoImpl{db: db} }

func (d *taskDaoImpl) Create(ctx context.Context, task *models.Task) error {
	return translateError(d.db.WithContext(ctx).Create(task).Error)
}

func (d *taskDaoImpl) Get(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := d.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &task, nil
}

func (d *taskDaoImpl) ListByUserID(ctx context.Context, userID int64) ([]*models.Task, error) {
	var tasks []*models.Task
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, translateError(err)
	}
	return tasks, nil
}

func (d *taskDaoImpl) Save(ctx context.Context, task *models.Task) error {
	// MySQL reports changed rows rather than matched rows, so RowsAffected
	// is not a reliable existence check here.
	res := d.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"due_date":    task.DueDate,
			"user_id":     task.UserID,
			"reviewer_id": task.ReviewerID,
			"status":      task.Status,
			"updated_at":  task.UpdatedAt,
		})
	return translateError(res.Error)
}

func (d *taskDaoImpl) Delete(ctx context.Context, id, userID int64) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
