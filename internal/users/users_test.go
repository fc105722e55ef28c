package users

import (
	"context"
	"testing"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectory(t *testing.T) (*Conf, *int) {
	t.Helper()
	bus := events.NewBus()
	changed := new(int)
	bus.Subscribe(events.TopicUserChanged, func(events.Event) { *changed++ })
	c, err := NewConf(bus, SeedUsers(time.Now()))
	require.NoError(t, err)
	return c, changed
}

func TestLogin_Success(t *testing.T) {
	c, changed := newDirectory(t)

	u, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.True(t, u.IsAdmin())

	assert.True(t, c.IsLoggedIn())
	assert.True(t, c.IsAdmin())
	current, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "admin", current.Username)
	assert.Equal(t, 1, *changed)
}

func TestLogin_WrongCredentials(t *testing.T) {
	c, changed := newDirectory(t)
	ctx := context.Background()

	_, errWrongPassword := c.Login(ctx, "user", "nope")
	_, errUnknownUser := c.Login(ctx, "ghost", "user123")

	assert.True(t, apperr.Is(errWrongPassword, apperr.KindUnauthorized))
	assert.True(t, apperr.Is(errUnknownUser, apperr.KindUnauthorized))
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
	assert.False(t, c.IsLoggedIn())
	assert.Equal(t, 0, *changed)
}

func TestLogin_IsCaseSensitive(t *testing.T) {
	c, _ := newDirectory(t)
	_, err := c.Login(context.Background(), "Admin", "admin123")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestLogout_ClearsSession(t *testing.T) {
	c, changed := newDirectory(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "user", "user123")
	require.NoError(t, err)
	c.Logout(ctx)

	assert.False(t, c.IsLoggedIn())
	assert.False(t, c.IsAdmin())
	assert.Equal(t, 2, *changed)

	// logging out twice is fine
	c.Logout(ctx)
	assert.Equal(t, 3, *changed)
}

func TestRegister_AutoLogin(t *testing.T) {
	c, changed := newDirectory(t)
	ctx := context.Background()

	u, err := c.Register(ctx, NewUser{Username: "painter", Password: "brush", Email: "p@example.com", Name: "Painter"})
	require.NoError(t, err)
	assert.Equal(t, 3, u.ID)
	assert.Equal(t, RoleUser, u.Role)

	current, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)
	assert.Equal(t, 1, *changed)

	_, err = c.Login(ctx, "painter", "brush")
	assert.NoError(t, err)
}

func TestRegister_Admin(t *testing.T) {
	c, _ := newDirectory(t)
	u, err := c.Register(context.Background(), NewUser{Username: "curator", Password: "x", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.True(t, c.IsAdmin())
}

func TestRegister_Conflicts(t *testing.T) {
	c, changed := newDirectory(t)
	ctx := context.Background()

	_, err := c.Register(ctx, NewUser{Username: "user", Password: "other"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = c.Register(ctx, NewUser{Username: "someone", Password: "x", Email: "USER@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// usernames compare case-sensitively
	_, err = c.Register(ctx, NewUser{Username: "User", Password: "x"})
	assert.NoError(t, err)
	assert.Equal(t, 1, *changed)
}

func TestRegister_RequiresCredentials(t *testing.T) {
	c, _ := newDirectory(t)
	_, err := c.Register(context.Background(), NewUser{Username: " ", Password: "x"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	_, err = c.Register(context.Background(), NewUser{Username: "x"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestGetUserByID(t *testing.T) {
	c, _ := newDirectory(t)
	u, err := c.GetUserByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "user", u.Username)

	_, err = c.GetUserByID(context.Background(), 77)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestChangePassword(t *testing.T) {
	c, _ := newDirectory(t)
	ctx := context.Background()

	err := c.ChangePassword(ctx, 2, "", "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	err = c.ChangePassword(ctx, 2, "new-pass", "other")
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	err = c.ChangePassword(ctx, 99, "new-pass", "new-pass")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, c.ChangePassword(ctx, 2, "new-pass", "new-pass"))
	_, err = c.Login(ctx, "user", "user123")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = c.Login(ctx, "user", "new-pass")
	assert.NoError(t, err)
}
