package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"property-platform/internal/auth"
	"property-platform/internal/rbac"
	"property-platform/pkg/utils"
)

// Service provides registration, credential checks and profile updates.
//
// Bootstrap invariant:
// - The first registered user becomes Admin; everyone after that starts as
//   Homeowner. Role rows are created lazily inside the same transaction.
//
// Credential invariant:
// - Authenticate is opaque: unknown email and wrong password are the same
//   error, so callers cannot probe which emails are registered.
type Service struct {
	db *sql.DB
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Register creates the user, hashes the password and assigns the bootstrap
// role, all in one transaction. Password strength policy belongs to the
// HTTP layer; the service accepts any non-empty secret.
func (s *Service) Register(ctx context.Context, email, name, password string) (User, []string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return User{}, nil, ErrInvalidArgument
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.clock().UTC()
	var created User
	var role string

	err = utils.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		taken, err := emailExists(ctx, tx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		id, err := insertUser(ctx, tx, email, name, hash, now)
		if err != nil {
			return err
		}

		total, err := countUsers(ctx, tx)
		if err != nil {
			return err
		}
		role = rbac.RoleHomeowner
		if total == 1 {
			role = rbac.RoleAdmin
		}

		roleID, err := ensureRole(ctx, tx, role)
		if err != nil {
			return err
		}
		if err := assignRole(ctx, tx, id, roleID); err != nil {
			return err
		}

		created = User{ID: id, Email: email, Name: name, PasswordHash: hash, CreatedAt: now}
		return nil
	})
	if err != nil {
		return User{}, nil, err
	}

	return created, []string{role}, nil
}

// Authenticate verifies the credentials and returns the user with their
// current role names. The failure mode never says what was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, []string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := findUserByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, nil, ErrInvalidCredentials
		}
		return User{}, nil, err
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return User{}, nil, ErrInvalidCredentials
	}

	roles, err := rolesForUser(ctx, s.db, u.ID)
	if err != nil {
		return User{}, nil, err
	}
	return u, roles, nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return findUserByID(ctx, s.db, id)
}

// Roles returns the current role names for the user.
func (s *Service) Roles(ctx context.Context, id int64) ([]string, error) {
	return rolesForUser(ctx, s.db, id)
}

// AssignRenter records an active tenancy for the user on the apartment.
func (s *Service) AssignRenter(ctx context.Context, userID, apartmentID int64) error {
	return assignRenter(ctx, s.db, userID, apartmentID)
}

// UpdateName changes the display name. Names are required, so there is no
// clear semantics here; the HTTP layer rejects null patches.
func (s *Service) UpdateName(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidArgument
	}
	return updateUserName(ctx, s.db, id, name)
}
