package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Caller is the identity decoded from the request's bearer token.
type Caller struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"-"`
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// User is a user record as served by the external auth service.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role,omitempty"`
	IsFollowing []string `json:"isFollowing,omitempty"`
}

// Credentials are forwarded verbatim to the auth service login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInput is the payload for registering or updating a user.
type UserInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
