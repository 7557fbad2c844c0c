package auth

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"time"

	errors "github.com/aditirto/identity-service/internal"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/aditirto/identity-service/internal/mailer"
	"github.com/aditirto/identity-service/internal/verification"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the auth flow: login, registration, email verification
// and the per-request authorization check.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGenerator
	codes      verification.CodeStore
	mail       mailer.Mailer
	bcryptCost int
	codeTTL    time.Duration
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, codes verification.CodeStore, mail mailer.Mailer, bcryptCost int, codeTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		codes:      codes,
		mail:       mail,
		bcryptCost: bcryptCost,
		codeTTL:    codeTTL,
		logger:     logger,
	}
}

// Login checks credentials and issues an access token carrying the user's
// current email and role. Absent user, inactive account, unset password and
// wrong password all produce the same credentials error.
func (s *Service) Login(dto LoginDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}

	u, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return TokenResponse{}, errors.NewInternalError("failed to load user", err)
	}

	if u == nil || !u.IsActive || u.PasswordHash == nil {
		return TokenResponse{}, errors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(dto.Password)) != nil {
		return TokenResponse{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokenGen.Generate(u.Email, u.Role)
	if err != nil {
		return TokenResponse{}, errors.NewInternalError("failed to sign token", err)
	}

	// Best effort: a failed timestamp write should not block the login.
	if err := s.repo.UpdateLastLogin(u.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last_login", "user_id", u.ID, "error", err)
	}

	return TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Register creates an inactive account pending email verification.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}
	hashStr := string(hash)

	created, err := s.repo.CreateUser(&User{
		Email:        dto.Email,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         rbac.RoleUser,
		PasswordHash: &hashStr,
		IsActive:     false,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to create user", err)
	}
	return created, nil
}

// SendVerificationCode issues a one-time 6-digit code, stores it with a TTL
// and mails it. Delivery failures surface as a distinct 502 error rather
// than taking the request down.
func (s *Service) SendVerificationCode(ctx context.Context, dto SendCodeDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return errors.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return errors.ErrUserNotFound
	}
	if u.IsActive {
		return errors.ErrUserAlreadyActive
	}

	code, err := generateCode()
	if err != nil {
		return errors.NewInternalError("failed to generate code", err)
	}

	if err := s.codes.Set(ctx, u.Email, code, s.codeTTL); err != nil {
		return errors.NewInternalError("failed to store verification code", err)
	}

	body, err := mailer.BuildVerificationEmail(code)
	if err != nil {
		return errors.NewInternalError("failed to render email", err)
	}

	if err := s.mail.Send(ctx, u.Email, mailer.VerificationSubject, body); err != nil {
		s.logger.Error("verification email delivery failed", "email", u.Email, "error", err)
		return errors.ErrNotificationDelivery.WithCause(err)
	}
	return nil
}

// VerifyEmail activates the account when the submitted code matches the
// stored one. A missing (expired or never issued) code is the same failure
// as a mismatch.
func (s *Service) VerifyEmail(ctx context.Context, dto VerifyDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return errors.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return errors.ErrUserNotFound
	}
	if u.IsActive {
		return errors.ErrUserAlreadyActive
	}

	stored, err := s.codes.Get(ctx, u.Email)
	if err != nil {
		if err == verification.ErrCodeNotFound {
			return errors.ErrInvalidCode
		}
		return errors.NewInternalError("failed to read verification code", err)
	}
	if stored != dto.Code {
		return errors.ErrInvalidCode
	}

	if err := s.repo.ActivateUser(u.ID); err != nil {
		return errors.NewInternalError("failed to activate user", err)
	}
	return nil
}

// Authorize resolves the principal behind a bearer token and checks that an
// active permission row grants (action, resource) to the token's role. The
// role is taken from the token, not re-read from the user row: a role change
// only takes effect once the holder logs in again. The active flag IS
// re-read, so soft-deleted users are rejected immediately.
func (s *Service) Authorize(ctx context.Context, token string, action rbac.Action, resource rbac.Resource) (*User, error) {
	claims, err := s.tokenGen.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, errors.ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByEmail(claims.Subject)
	if err != nil {
		return nil, errors.NewInternalError("failed to load user", err)
	}
	if u == nil || !u.IsActive {
		return nil, errors.ErrInvalidCredentials
	}

	allowed, err := s.repo.HasActivePermission(rbac.Role(claims.Role), action, resource)
	if err != nil {
		return nil, errors.NewInternalError("failed to check permission", err)
	}
	if !allowed {
		s.logger.Warn("access denied",
			"email", u.Email,
			"role", claims.Role,
			"action", action,
			"resource", resource)
		return nil, errors.ErrPermissionDenied
	}

	return u, nil
}

// generateCode returns a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
