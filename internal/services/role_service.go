package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/dao"
)

type roleServiceImpl struct {
	logger zerolog.Logger
	users  dao.UserDao
}

func NewRoleService(
	logger zerolog.Logger,
	users dao.UserDao,
) RoleService {
	return &roleServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *roleServiceImpl) GetRoleNames(ctx context.Context, userID int64) ([]string, error) {
	roleIDs, err := s.users.RoleIDsByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select role ids")
		return nil, err
	}

	names, err := s.users.RoleNamesByIDs(ctx, roleIDs)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select role names")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", userID).
		Strs("roles", names).
		Msg("selected role names")
	return names, nil
}

func (s *roleServiceImpl) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	names, err := s.GetRoleNames(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *roleServiceImpl) AssignRole(ctx context.Context, userID int64, role string) error {
	_, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn().
				Int64("user_id", userID).
				Msg("user not found")
			return ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select user")
		return err
	}

	err = s.users.AssignRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.logger.Warn().
				Str("role", role).
				Msg("role not found")
			return ErrRoleNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Str("role", role).
			Msg("failed to assign role")
		return err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Str("role", role).
		Msg("assigned role")
	return nil
}
