// Package directory manages the admin roster of application users:
// activation, permission edits and the self-edit lockout.
package directory

import (
	"context"
	"errors"
	"fmt"

	directoryRepo "viacampo/database/repository/directory"
	"viacampo/models"
	"viacampo/services/access"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrSelfEdit is returned when an admin tries to change their own active
// flag or permissions.
var ErrSelfEdit = errors.New("users cannot edit their own access")

// DirectoryService defines the admin directory operations.
type DirectoryService interface {
	// EnsureUser upserts a directory row at first login, with the default
	// permission set, and returns the current row.
	EnsureUser(ctx context.Context, actor models.Actor) (*models.AppUser, error)
	GetByUID(ctx context.Context, uid string) (*models.AppUser, error)
	List(ctx context.Context) ([]models.AppUser, error)
	Subscribe(ctx context.Context, onChange func([]models.AppUser), onError func(error)) (func(), error)
	// SetActive toggles a user's active gate. Self-edits are rejected.
	SetActive(ctx context.Context, actor models.Actor, uid string, active bool) error
	// SetProfile replaces a user's permissions with those of the given
	// profile. Self-edits are rejected.
	SetProfile(ctx context.Context, actor models.Actor, uid string, profile access.Profile) error
}

// DefaultDirectoryService is the production implementation. AuthCache, when
// set, is used to drop stale cached access profiles after an edit.
type DefaultDirectoryService struct {
	Repo      directoryRepo.DirectoryRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}

func (s *DefaultDirectoryService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

func (s *DefaultDirectoryService) EnsureUser(ctx context.Context, actor models.Actor) (*models.AppUser, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("cannot ensure directory row without an identity")
	}

	user, err := s.Repo.GetByUID(ctx, actor.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, directoryRepo.ErrNotFound) {
		return nil, err
	}

	// First login: register with the default tray-only access, active.
	fresh := models.AppUser{
		UID:         actor.UID,
		Email:       actor.Email,
		Active:      true,
		Permissions: access.FromProfile(access.ProfileTray),
	}
	if err := s.Repo.Upsert(ctx, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *DefaultDirectoryService) GetByUID(ctx context.Context, uid string) (*models.AppUser, error) {
	return s.Repo.GetByUID(ctx, uid)
}

func (s *DefaultDirectoryService) List(ctx context.Context) ([]models.AppUser, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultDirectoryService) Subscribe(ctx context.Context, onChange func([]models.AppUser), onError func(error)) (func(), error) {
	return s.Repo.Subscribe(ctx, onChange, onError)
}

func (s *DefaultDirectoryService) SetActive(ctx context.Context, actor models.Actor, uid string, active bool) error {
	if actor.UID == uid {
		return ErrSelfEdit
	}
	if err := s.Repo.SetActive(ctx, uid, active); err != nil {
		return err
	}
	s.dropCachedProfile(ctx, uid)
	return nil
}

func (s *DefaultDirectoryService) SetProfile(ctx context.Context, actor models.Actor, uid string, profile access.Profile) error {
	if actor.UID == uid {
		return ErrSelfEdit
	}
	if !access.ValidProfile(profile) {
		return fmt.Errorf("unknown access profile %q", profile)
	}
	if err := s.Repo.SetPermissions(ctx, uid, access.FromProfile(profile)); err != nil {
		return err
	}
	s.dropCachedProfile(ctx, uid)
	return nil
}

func (s *DefaultDirectoryService) dropCachedProfile(ctx context.Context, uid string) {
	if s.AuthCache == nil {
		return
	}
	if err := access.DropProfile(ctx, s.AuthCache, uid); err != nil {
		s.logger().Warn("failed to drop cached access profile", zap.String("uid", uid), zap.Error(err))
	}
}
