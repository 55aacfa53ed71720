package models

import "time"

const (
	StatusPending          = "Pending"
	StatusCompleted        = "Completed"
	StatusNeedsImprovement = "Needs Improvement"
	StatusDenied           = "Denied"
)

// ReviewStatuses lists the statuses a reviewer may assign, in display order.
var ReviewStatuses = []string{
	StatusCompleted,
	StatusNeedsImprovement,
	StatusDenied,
}

func IsReviewStatus(status string) bool {
	for _, s := range ReviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	DueDate     time.Time `gorm:"not null"`
	UserID      int64     `gorm:"not null;index"`
	ReviewerID  int64     `gorm:"not null;index"`
	Status      string    `gorm:"size:32;not null;default:'Pending';check:chk_tasks_status,status IN ('Pending','Completed','Needs Improvement','Denied')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string { return "tasks" }
