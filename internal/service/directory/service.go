// Package directory connects the local user store to the LDAP
// directory: credential checks at login and the provisioning sync.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/auth"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/ldap"
)

// ErrSyncInProgress is returned when a sync is requested while one is
// already running. The flag is explicit process-wide state, a
// single-slot guard rather than a queue.
var ErrSyncInProgress = errors.New("directory sync already in progress")

type SyncResult struct {
	Created     int `json:"created"`
	Updated     int `json:"updated"`
	Deactivated int `json:"deactivated"`
}

// Client is the slice of the LDAP client the service needs.
type Client interface {
	FindUser(username string) (ldap.Entry, error)
	BindUser(dn, password string) error
	ListUsers() ([]ldap.Entry, error)
}

type Service struct {
	client   Client
	userRepo user.Repository
	syncing  atomic.Bool
}

func NewService(client Client, userRepo user.Repository) *Service {
	return &Service{client: client, userRepo: userRepo}
}

// Authenticate verifies directory credentials and returns the local
// account, provisioning it on first login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	entry, err := s.client.FindUser(username)
	if err != nil {
		return user.User{}, auth.ErrInvalidCredentials
	}

	if err := s.client.BindUser(entry.DN, password); err != nil {
		return user.User{}, auth.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByUsername(ctx, entry.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return s.provision(ctx, entry)
		}
		return user.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !u.Active {
		return user.User{}, user.ErrUserInactive
	}
	return u, nil
}

// Sync provisions every directory user into the local store and
// deactivates local directory-backed accounts that no longer exist
// upstream. Only one sync runs at a time.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	if !s.syncing.CompareAndSwap(false, true) {
		return SyncResult{}, ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	entries, err := s.client.ListUsers()
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to list directory users: %w", err)
	}

	known := make(map[string]bool, len(entries))
	var res SyncResult
	for _, entry := range entries {
		if entry.Username == "" {
			continue
		}
		known[entry.Username] = true

		existing, err := s.userRepo.GetByUsername(ctx, entry.Username)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				if _, err := s.provision(ctx, entry); err != nil {
					slog.Error("sync: failed to provision user", "username", entry.Username, "error", err)
					continue
				}
				res.Created++
				continue
			}
			slog.Error("sync: failed to load user", "username", entry.Username, "error", err)
			continue
		}

		existing.FullName = entry.FullName
		existing.Email = entry.Email
		existing.DN = entry.DN
		if !existing.Active {
			existing.Active = true
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			slog.Error("sync: failed to update user", "username", entry.Username, "error", err)
			continue
		}
		res.Updated++
	}

	locals, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list local users: %w", err)
	}
	for _, u := range locals {
		// Locally-created accounts (no DN) are never deactivated by
		// the sync.
		if u.DN == "" || known[u.Username] {
			continue
		}
		if err := s.userRepo.SetActive(ctx, u.ID, false); err != nil {
			slog.Error("sync: failed to deactivate user", "username", u.Username, "error", err)
			continue
		}
		res.Deactivated++
	}

	return res, nil
}

// Syncing reports whether a sync is currently running.
func (s *Service) Syncing() bool {
	return s.syncing.Load()
}

func (s *Service) provision(ctx context.Context, entry ldap.Entry) (user.User, error) {
	created, err := s.userRepo.Create(ctx, user.User{
		Username: entry.Username,
		FullName: entry.FullName,
		Email:    entry.Email,
		Role:     user.RoleEmployee,
		DN:       entry.DN,
		Active:   true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to provision user: %w", err)
	}
	return created, nil
}
