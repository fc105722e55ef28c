package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gallery-store/internal/apperr"
	"gallery-store/internal/events"
)

const errMsgInvalidCredentials = "invalid username or password"

// Conf is the in-memory user directory together with the single active
// session of the process.
type Conf struct {
	mu      sync.RWMutex
	users   []User
	current *User
	bus     *events.Bus
	now     func() time.Time
}

func NewConf(bus *events.Bus, seed []User) (*Conf, error) {
	if bus == nil {
		return nil, fmt.Errorf("event bus is nil")
	}
	c := &Conf{bus: bus, now: time.Now}
	c.users = append(c.users, seed...)
	return c, nil
}

// SeedUsers returns the demo administrator and customer accounts.
func SeedUsers(now time.Time) []User {
	day := 24 * time.Hour
	return []User{
		{
			ID:        1,
			Username:  "admin",
			Password:  "admin123",
			Email:     "admin@artstore.com",
			Name:      "Administrator",
			Role:      RoleAdmin,
			CreatedAt: now.Add(-30 * day),
		},
		{
			ID:        2,
			Username:  "user",
			Password:  "user123",
			Email:     "user@example.com",
			Name:      "Customer",
			Role:      RoleUser,
			CreatedAt: now.Add(-15 * day),
		},
	}
}

// Register adds a user and makes it the active session.
func (c *Conf) Register(ctx context.Context, nu NewUser) (User, error) {
	if strings.TrimSpace(nu.Username) == "" || nu.Password == "" {
		return User{}, apperr.NewInvalidInput("username and password are required")
	}

	c.mu.Lock()
	for _, u := range c.users {
		if u.Username == nu.Username {
			c.mu.Unlock()
			return User{}, apperr.NewConflict("username is already taken")
		}
		if nu.Email != "" && strings.EqualFold(u.Email, nu.Email) {
			c.mu.Unlock()
			return User{}, apperr.NewConflict("email is already registered")
		}
	}

	role := RoleUser
	if nu.IsAdmin {
		role = RoleAdmin
	}
	user := User{
		ID:        c.nextID(),
		Username:  nu.Username,
		Password:  nu.Password,
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      role,
		CreatedAt: c.now(),
	}
	c.users = append(c.users, user)
	session := user
	c.current = &session
	c.mu.Unlock()

	slog.Info("user registered", slog.Int("UserID", user.ID), slog.String("Username", user.Username))
	c.bus.Publish(events.TopicUserChanged, fmt.Sprint(user.ID), nil)
	return user, nil
}

func (c *Conf) Login(ctx context.Context, username, password string) (User, error) {
	c.mu.Lock()
	var found *User
	for i := range c.users {
		if c.users[i].Username == username && c.users[i].Password == password {
			found = &c.users[i]
			break
		}
	}
	if found == nil {
		c.mu.Unlock()
		return User{}, apperr.NewUnauthorized(errMsgInvalidCredentials)
	}
	user := *found
	session := user
	c.current = &session
	c.mu.Unlock()

	c.bus.Publish(events.TopicUserChanged, fmt.Sprint(user.ID), nil)
	return user, nil
}

func (c *Conf) Logout(ctx context.Context) {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()

	c.bus.Publish(events.TopicUserChanged, "", nil)
}

func (c *Conf) CurrentUser() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return User{}, false
	}
	return *c.current, true
}

func (c *Conf) IsLoggedIn() bool {
	_, ok := c.CurrentUser()
	return ok
}

func (c *Conf) IsAdmin() bool {
	u, ok := c.CurrentUser()
	return ok && u.IsAdmin()
}

func (c *Conf) GetUserByID(ctx context.Context, id int) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, apperr.NewNotFoundf("user %d not found", id)
}

// ChangePassword replaces the password of user id once newPassword has been
// confirmed.
func (c *Conf) ChangePassword(ctx context.Context, id int, newPassword, confirm string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperr.NewInvalidInput("new password must not be empty")
	}
	if newPassword != confirm {
		return apperr.NewInvalidInput("passwords do not match")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.users {
		if c.users[i].ID == id {
			c.users[i].Password = newPassword
			if c.current != nil && c.current.ID == id {
				c.current.Password = newPassword
			}
			return nil
		}
	}
	return apperr.NewNotFoundf("user %d not found", id)
}

// nextID expects c.mu to be held.
func (c *Conf) nextID() int {
	maxID := 0
	for _, u := range c.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
