package auth

import (
	"context"
	"time"

	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// User is the authenticated principal attached to the request context and
// returned by register / profile endpoints.
type User struct {
	ID           int64      `json:"id"`
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Email        string     `json:"email"`
	Role         rbac.Role  `json:"role"`
	PasswordHash *string    `json:"-"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// Claims is the token payload: subject carries the email, Role the role the
// token was issued for. Authorization trusts the role for lookup but always
// re-checks the live user row, so a deactivated account cannot keep using
// an unexpired token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenGenerator creates and verifies signed access tokens.
type TokenGenerator interface {
	Generate(email string, role rbac.Role) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// ServiceAPI is what handlers and middleware consume.
type ServiceAPI interface {
	Login(dto LoginDTO) (TokenResponse, error)
	Register(dto RegisterDTO) (*User, error)
	SendVerificationCode(ctx context.Context, dto SendCodeDTO) error
	VerifyEmail(ctx context.Context, dto VerifyDTO) error
	Authorize(ctx context.Context, token string, action rbac.Action, resource rbac.Resource) (*User, error)
}

// RepositoryAPI is the persistence surface the auth flow needs. GetUserByEmail
// returns (nil, nil) when no row matches.
type RepositoryAPI interface {
	GetUserByEmail(email string) (*User, error)
	CreateUser(u *User) (*User, error)
	ActivateUser(userID int64) error
	UpdateLastLogin(userID int64, at time.Time) error
	HasActivePermission(role rbac.Role, action rbac.Action, resource rbac.Resource) (bool, error)
}
