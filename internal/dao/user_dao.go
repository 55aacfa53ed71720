package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

type UserDao interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateWithSession inserts the user and its first session in one
	// transaction. session.UserID is filled in from the new user.
	CreateWithSession(ctx context.Context, user *models.User, session *models.Session) error
	RoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	RoleNamesByIDs(ctx context.Context, roleIDs []int64) ([]string, error)
	AssignRole(ctx context.Context, userID int64, roleName string) error
}

type userDaoImpl struct{ db *gorm.DB }

func NewUserDao(db *gorm.DB) UserDao { return &userDaoImpl{db: db} }

func (d *userDaoImpl) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *userDaoImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *userDaoImpl) CreateWithSession(ctx context.Context, user *models.User, session *models.Session) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		session.UserID = user.ID
		return tx.Create(session).Error
	})
	return translateError(err)
}

func (d *userDaoImpl) RoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := d.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &ids).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

func (d *userDaoImpl) RoleNamesByIDs(ctx context.Context, roleIDs []int64) ([]string, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var names []string
	err := d.db.WithContext(ctx).
		Model(&models.Role{}).
		Where("id IN ?", roleIDs).
		Pluck("name", &names).Error
	if err != nil {
		return nil, translateError(err)
	}
	return names, nil
}

func (d *userDaoImpl) AssignRole(ctx context.Context, userID int64, roleName string) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			return err
		}
		return tx.Where(models.UserRole{UserID: userID, RoleID: role.ID}).
			FirstOrCreate(&models.UserRole{UserID: userID, RoleID: role.ID}).Error
	})
	return translateError(err)
}
