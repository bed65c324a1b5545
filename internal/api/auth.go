package api

import (
	"context"
	"strings"

	"github.com/arjunmk/gms/internal/gms"
)

// Credentials for login. AuthKey is required for officer and admin
// logins only.
type Credentials struct {
	UserNum  string `json:"userNum"`
	Password string `json:"password"`
	AuthKey  string `json:"authKey,omitempty"`
}

// Login authenticates and returns the identity the server vouches for.
// The session cookie rides along on the response.
func (c *Client) Login(ctx context.Context, creds Credentials) (gms.User, error) {
	var u gms.User
	if err := c.post(ctx, "/auth/login", creds, &u); err != nil {
		return gms.User{}, err
	}
	return u, nil
}

// Logout notifies the server. Callers treat failures as best-effort and
// clear local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Registration is the role-specific signup payload. Officer fields are
// ignored for employee signups and vice versa.
type Registration struct {
	UserNum      string `json:"userNum"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Address      string `json:"address,omitempty"`
	Department   string `json:"department,omitempty"`
	ContactNum   string `json:"contactNum,omitempty"`
	EmployeeRole string `json:"employeeRole,omitempty"`
	CategoryNum  string `json:"categoryNum,omitempty"`
	AuthKey      string `json:"authKey,omitempty"`
}

// Register signs a new user up under the given role. It does not
// authenticate the caller.
func (c *Client) Register(ctx context.Context, role gms.Role, reg Registration) error {
	return c.post(ctx, "/auth/register/"+strings.ToLower(string(role)), reg, nil)
}

// CurrentUser fetches the profile DTO as a loose map; field names vary
// across backend versions, so resolution happens via gms.FirstField at
// the call sites.
func (c *Client) CurrentUser(ctx context.Context) (map[string]any, error) {
	var dto map[string]any
	if err := c.get(ctx, "/current-user", &dto); err != nil {
		return nil, err
	}
	return dto, nil
}
