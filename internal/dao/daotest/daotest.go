// Package daotest provides in-memory implementations of the dao interfaces
// for tests. None of them are safe for concurrent use.
package daotest

import (
	"context"
	"fmt"
	"sort"

	"github.com/Tokamp4/task-management-system-fork/internal/dao"
	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

// TaskDao implements dao.TaskDao over a map. Get returns copies so that
// a rejected update cannot leak into the stored task.
type TaskDao struct {
	Tasks map[int64]*models.Task
	// Saves counts calls to Save.
	Saves  int
	nextID int64
}

var (
	_ dao.TaskDao    = (*TaskDao)(nil)
	_ dao.UserDao    = (*UserDao)(nil)
	_ dao.SessionDao = (*SessionDao)(nil)
)

func NewTaskDao(tasks ...*models.Task) *TaskDao {
	d := &TaskDao{Tasks: map[int64]*models.Task{}, nextID: 1}
	for _, t := range tasks {
		d.Tasks[t.ID] = t
		if t.ID >= d.nextID {
			d.nextID = t.ID + 1
		}
	}
	return d
}

func (d *TaskDao) Create(ctx context.Context, t *models.Task) error {
	t.ID = d.nextID
	d.nextID++
	cp := *t
	d.Tasks[t.ID] = &cp
	return nil
}

func (d *TaskDao) Get(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := d.Tasks[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (d *TaskDao) ListByUserID(ctx context.Context, userID int64) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range d.Tasks {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *TaskDao) Save(ctx context.Context, t *models.Task) error {
	d.Saves++
	cp := *t
	d.Tasks[t.ID] = &cp
	return nil
}

func (d *TaskDao) Delete(ctx context.Context, id, userID int64) error {
	t, ok := d.Tasks[id]
	if !ok || t.UserID != userID {
		return dao.ErrNotFound
	}
	delete(d.Tasks, id)
	return nil
}

// UserDao implements dao.UserDao. Roles maps user id to role names. When
// Sessions is set, CreateWithSession stores the first session there.
type UserDao struct {
	Users    map[int64]*models.User
	Roles    map[int64][]string
	Sessions *SessionDao
	roleIDs  map[string]int64
	nextID   int64
}

func NewUserDao() *UserDao {
	return &UserDao{
		Users:   map[int64]*models.User{},
		Roles:   map[int64][]string{},
		roleIDs: map[string]int64{models.RoleReviewer: 1, models.RoleAdmin: 2},
		nextID:  1,
	}
}

func (d *UserDao) AddUser(id int64, roles ...string) {
	d.Users[id] = &models.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id)}
	d.Roles[id] = roles
	if id >= d.nextID {
		d.nextID = id + 1
	}
}

func (d *UserDao) Get(ctx context.Context, id int64) (*models.User, error) {
	u, ok := d.Users[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return u, nil
}

func (d *UserDao) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range d.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, dao.ErrNotFound
}

func (d *UserDao) CreateWithSession(ctx context.Context, u *models.User, s *models.Session) error {
	for _, existing := range d.Users {
		if existing.Email == u.Email {
			return dao.ErrDuplicate
		}
	}
	u.ID = d.nextID
	d.nextID++
	d.Users[u.ID] = u
	s.UserID = u.ID
	if d.Sessions != nil {
		cp := *s
		d.Sessions.Sessions[s.ID] = &cp
	}
	return nil
}

func (d *UserDao) RoleIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for _, name := range d.Roles[userID] {
		ids = append(ids, d.roleIDs[name])
	}
	return ids, nil
}

func (d *UserDao) RoleNamesByIDs(ctx context.Context, roleIDs []int64) ([]string, error) {
	var names []string
	for _, id := range roleIDs {
		for name, rid := range d.roleIDs {
			if rid == id {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (d *UserDao) AssignRole(ctx context.Context, userID int64, roleName string) error {
	if _, ok := d.roleIDs[roleName]; !ok {
		return dao.ErrNotFound
	}
	for _, name := range d.Roles[userID] {
		if name == roleName {
			return nil
		}
	}
	d.Roles[userID] = append(d.Roles[userID], roleName)
	return nil
}

// SessionDao implements dao.SessionDao over a map keyed by session id.
type SessionDao struct {
	Sessions map[string]*models.Session
}

func NewSessionDao() *SessionDao {
	return &SessionDao{Sessions: map[string]*models.Session{}}
}

func (d *SessionDao) Get(ctx context.Context, id string) (*models.Session, error) {
	s, ok := d.Sessions[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (d *SessionDao) GetByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error) {
	for _, s := range d.Sessions {
		if s.RefreshToken == refreshToken && s.Fingerprint == fingerprint {
			cp := *s
			return &cp, nil
		}
	}
	return nil, dao.ErrNotFound
}

func (d *SessionDao) Replace(ctx context.Context, s *models.Session) error {
	_, _ = d.DeleteByUserID(ctx, s.UserID)
	cp := *s
	d.Sessions[s.ID] = &cp
	return nil
}

func (d *SessionDao) Rotate(ctx context.Context, s *models.Session) error {
	existing, ok := d.Sessions[s.ID]
	if !ok {
		return dao.ErrNotFound
	}
	existing.RefreshToken = s.RefreshToken
	existing.ExpiresAt = s.ExpiresAt
	existing.UpdatedAt = s.UpdatedAt
	return nil
}

func (d *SessionDao) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for id, s := range d.Sessions {
		if s.UserID == userID {
			delete(d.Sessions, id)
			n++
		}
	}
	return n, nil
}
