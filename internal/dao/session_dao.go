package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

type SessionDao interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error)
	// Replace deletes every session of session.UserID and inserts session,
	// in one transaction.
	Replace(ctx context.Context, session *models.Session) error
	Rotate(ctx context.Context, session *models.Session) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

type sessionDaoImpl struct{ db *gorm.DB }

func NewSessionDao(db *gorm.DB) SessionDao { return &sessionDaoImpl{db: db} }

func (d *sessionDaoImpl) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (d *sessionDaoImpl) GetByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error) {
	var session models.Session
	err := d.db.WithContext(ctx).
		Where("refresh_token = ? AND fingerprint = ?", refreshToken, fingerprint).
		First(&session).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

func (d *sessionDaoImpl) Replace(ctx context.Context, session *models.Session) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", session.UserID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	return translateError(err)
}

func (d *sessionDaoImpl) Rotate(ctx context.Context, session *models.Session) error {
	res := d.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"refresh_token": session.RefreshToken,
			"expires_at":    session.ExpiresAt,
			"updated_at":    session.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *sessionDaoImpl) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := d.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{})
	return res.RowsAffected, translateError(res.Error)
}
