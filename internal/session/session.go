// Package session answers "who is using the store right now" and owns the
// user list. Credentials are stored and compared as plaintext: the persisted
// documents are shared with a demo frontend that does the same, and parity
// with them is the contract here. Do not copy this scheme anywhere real.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/logging"
	"github.com/techstore/techstore/internal/models"
	"github.com/techstore/techstore/internal/store"
	"github.com/techstore/techstore/internal/validate"
)

var (
	ErrValidation         = errors.New("validation")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
)

// Reserved admin credential pair. Logging in with it never consults the
// stored user list.
const (
	AdminEmail    = "admin@gmail.com"
	AdminPassword = "PASSWORD"
	AdminID       = "admin"
)

type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Service struct {
	Store  store.Store
	Events events.Publisher
}

func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.Store.Load(ctx, store.KeyUsers, &users); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return users, nil
}

// CreateUser appends a new user to the stored list without touching the
// session. Email uniqueness is case-sensitive, matching the stored data.
func (s *Service) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	creds := Credentials{Email: email, Password: password}
	if err := validate.Check(creds); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  password,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.Store.Save(ctx, store.KeyUsers, users); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_created",
		"userID": user.ID,
		"email":  user.Email,
	})
	return &user, nil
}

// DeleteUser removes the user with the given id; absent ids are a no-op.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	users, err := s.Users(ctx)
	if err != nil {
		return err
	}

	kept := users[:0]
	removed := false
	for _, u := range users {
		if u.ID == id {
			removed = true
			continue
		}
		kept = append(kept, u)
	}

	if err := s.Store.Save(ctx, store.KeyUsers, kept); err != nil {
		return err
	}
	if removed {
		events.Emit(ctx, s.Events, events.TopicUserEvents, id, map[string]any{
			"type":   "user_deleted",
			"userID": id,
		})
	}
	return nil
}

// SignUp creates the user and makes it the current session.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "session.signup")

	user, err := s.CreateUser(ctx, email, password, name)
	if err != nil {
		l.Warn("signup_failed", "error", err)
		return nil, err
	}

	if err := s.Store.Save(ctx, store.KeyCurrentUser, user); err != nil {
		return nil, err
	}

	l.Info("signup_success", "userID", user.ID)
	return user, nil
}

// Login resolves the submitted pair to a user and makes it the current
// session. The reserved admin pair wins before the stored list is consulted;
// everything else is matched by exact equality.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "session.login")

	if email == AdminEmail && password == AdminPassword {
		admin := models.User{
			ID:        AdminID,
			Email:     AdminEmail,
			Password:  AdminPassword,
			Name:      "Admin",
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Store.Save(ctx, store.KeyCurrentUser, admin); err != nil {
			return nil, err
		}
		l.Info("login_success", "userID", admin.ID, "admin", true)
		return &admin, nil
	}

	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			if err := s.Store.Save(ctx, store.KeyCurrentUser, users[i]); err != nil {
				return nil, err
			}
			events.Emit(ctx, s.Events, events.TopicUserEvents, users[i].ID, map[string]any{
				"type":   "user_logged_in",
				"userID": users[i].ID,
			})
			l.Info("login_success", "userID", users[i].ID)
			return &users[i], nil
		}
	}

	l.Warn("login_failed", "reason", "no matching user")
	return nil, ErrInvalidCredentials
}

// Logout clears the session. Logging out while anonymous is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	return s.Store.Delete(ctx, store.KeyCurrentUser)
}

// Current returns the active user, or nil when anonymous.
func (s *Service) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	err := s.Store.Load(ctx, store.KeyCurrentUser, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAdmin reports whether u holds the reserved admin identity.
func IsAdmin(u *models.User) bool {
	return u != nil && u.Email == AdminEmail
}
