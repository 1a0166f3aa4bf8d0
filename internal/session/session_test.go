package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/techstore/internal/events"
	"github.com/techstore/techstore/internal/store"
)

func newTestService() *Service {
	return &Service{Store: store.NewMemStore(), Events: events.Nop{}}
}

func TestSignUp_SetsSession(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "pw", user.Password)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestSignUp_DefaultsNameFromEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "bob@example.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "a@x.com", "pw2", "B")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignUp_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "pw"},
		{name: "not an email", email: "not-an-email", password: "pw"},
		{name: "empty password", email: "a@x.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.email, tt.password, "")
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLogin_ReservedAdminPair(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	// works with an empty user list
	user, err := svc.Login(ctx, AdminEmail, AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, AdminID, user.ID)
	assert.True(t, IsAdmin(user))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "admin login must not create a stored user")

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, AdminID, current.ID)
}

func TestLogin_ExactEquality(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "match", email: "a@x.com", password: "pw"},
		{name: "wrong password", email: "a@x.com", password: "PW", wantErr: ErrInvalidCredentials},
		{name: "wrong email case", email: "A@x.com", password: "pw", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "pw", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// logging out while anonymous is fine
	require.NoError(t, svc.Logout(ctx))
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, svc.DeleteUser(ctx, "nope"))
}

func TestCreateUser_DoesNotTouchSession(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "a@x.com", "pw", "A")
	require.NoError(t, err)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
