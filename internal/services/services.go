package services

import (
	"context"
	"errors"
	"time"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrRoleNotFound         = errors.New("role not found")

	ErrTaskNotFound       = errors.New("task not found")
	ErrReviewerIsAssignee = errors.New("reviewer is the task assignee")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrReviewerLacksRole  = errors.New("reviewer lacks reviewer role")
	ErrNotTaskReviewer    = errors.New("caller is not the task reviewer")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh rotates the refresh token of the session it belongs to.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password and creates the user together with a
	// session bound to the given fingerprint and a fresh token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID int64) error

	// ParseJWTToken parses the given access token and returns its claims,
	// or an error wrapping jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*models.AccessClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

// RoleService answers role membership questions. Nothing is cached: every
// call goes to the store.
type RoleService interface {
	GetRoleNames(ctx context.Context, userID int64) ([]string, error)
	HasRole(ctx context.Context, userID int64, role string) (bool, error)

	// AssignRole grants the named role to the user. Granting a role the user
	// already holds is a no-op.
	//
	// It returns ErrUserNotFound or ErrRoleNotFound.
	AssignRole(ctx context.Context, userID int64, role string) error
}

type TaskService interface {
	// CreateTask stores a new pending task after validating its reviewer.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	GetTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error)

	// UpdateTask overwrites the editable fields of a task.
	//
	// It returns ErrTaskNotFound, ErrReviewerIsAssignee, ErrReviewerNotFound
	// or ErrReviewerLacksRole, checked in that order. The task is left
	// untouched on error.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// UpdateTaskStatus sets the review status of a task.
	//
	// It returns ErrTaskNotFound, ErrNotTaskReviewer or ErrInvalidTaskStatus,
	// checked in that order.
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (*models.Task, error)

	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                int64
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     time.Time
	UserID      int64
	ReviewerID  int64
}

type UpdateTaskParams struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	UserID      int64
	ReviewerID  int64
}

type UpdateTaskStatusParams struct {
	ID int64
	// CallerID is the raw identity claim of the caller. It is compared
	// against the decimal form of the task's reviewer id.
	CallerID string
	Status   string
}

type DeleteTaskParams struct {
	ID     int64
	UserID int64
}
