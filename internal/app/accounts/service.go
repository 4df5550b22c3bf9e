package accounts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	clockport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clock"
	"github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

type Service struct {
	repo   userrepo.Repository
	clk    clockport.Clock
	hasher PasswordHasher
	log    *slog.Logger

	newUserID func() domain.UserID

	// SignInLimiter bounds authentication attempts process-wide.
	SignInLimiter *rate.Limiter
}

func NewService(repo userrepo.Repository, clk clockport.Clock, hasher PasswordHasher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:   repo,
		clk:    clk,
		hasher: hasher,
		log:    log,
		newUserID: func() domain.UserID {
			return domain.UserID(uuid.NewString())
		},
		SignInLimiter: rate.NewLimiter(rate.Every(time.Second), 20),
	}
}

// SetNewUserIDForTest overrides ID generation for deterministic tests.
func (s *Service) SetNewUserIDForTest(fn func() domain.UserID) { s.newUserID = fn }

// Register creates a Student identity, or completes a partially provisioned
// record (username reserved, no password) by setting its password and photo.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.Identity, error) {
	username := domain.NormalizeUsername(in.Username)
	if username == "" || in.Password == "" || in.ConfirmPassword == "" {
		return domain.Identity{}, &Error{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: "all fields are required",
		}
	}
	if in.Password != in.ConfirmPassword {
		return domain.Identity{}, &Error{
			Status:  400,
			Code:    "PASSWORD_MISMATCH",
			Message: "passwords do not match",
		}
	}

	existing, state, err := s.classifyUsername(ctx, username)
	if err != nil {
		return domain.Identity{}, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Identity{}, err
	}

	switch state {
	case provisionComplete:
		return domain.Identity{}, &Error{
			Status:  409,
			Code:    "ALREADY_EXISTS",
			Message: "user already exists",
		}

	case provisionIncomplete:
		existing.PasswordHash = digest
		existing.Photo = cloneStringPtr(in.PhotoPath)
		if err := s.repo.Update(ctx, existing); err != nil {
			return domain.Identity{}, err
		}
		return toIdentity(existing), nil

	default: // provisionNone
		u := userrepo.User{
			ID:           s.newUserID(),
			Username:     username,
			PasswordHash: digest,
			Role:         domain.RoleStudent,
			Photo:        cloneStringPtr(in.PhotoPath),
			CreatedAt:    s.clk.Now(),
		}
		if err := s.repo.Create(ctx, u); err != nil {
			if errors.Is(err, userrepo.ErrUsernameTaken) {
				return domain.Identity{}, &Error{
					Status:  409,
					Code:    "ALREADY_EXISTS",
					Message: "user already exists",
				}
			}
			return domain.Identity{}, err
		}
		return toIdentity(u), nil
	}
}

// Authenticate verifies the credentials for the required role and, on success,
// appends a login-history entry. The history write is best-effort: a store
// failure there is logged and never fails the sign-in.
//
// Unknown username, wrong role, and bad password all produce the same
// INVALID_CREDENTIALS error so responses cannot be used to enumerate usernames.
func (s *Service) Authenticate(ctx context.Context, username, password string, requiredRole domain.Role, userAgent string) (domain.Identity, error) {
	if s.SignInLimiter != nil && !s.SignInLimiter.Allow() {
		return domain.Identity{}, &Error{
			Status:  429,
			Code:    "RATE_LIMITED",
			Message: "too many sign-in attempts",
		}
	}

	u, err := s.repo.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.Identity{}, invalidCredentials()
		}
		return domain.Identity{}, err
	}
	if u.Role != requiredRole {
		return domain.Identity{}, invalidCredentials()
	}
	if u.PasswordHash == "" || !s.hasher.Verify(password, u.PasswordHash) {
		return domain.Identity{}, invalidCredentials()
	}

	rec := domain.LoginRecord{At: s.clk.Now(), UserAgent: userAgent}
	if err := s.repo.AppendLoginRecord(ctx, u.ID, rec); err != nil {
		s.log.WarnContext(ctx, "login history write failed",
			"user_id", string(u.ID), "err", err)
	} else {
		u.LoginHistory = append(u.LoginHistory, rec)
	}

	return toIdentity(u), nil
}

// GetIdentity returns the identity by ID.
func (s *Service) GetIdentity(ctx context.Context, id domain.UserID) (domain.Identity, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.Identity{}, &Error{
				Status:  404,
				Code:    "NOT_FOUND",
				Message: "user not found",
			}
		}
		return domain.Identity{}, err
	}
	return toIdentity(u), nil
}

func (s *Service) classifyUsername(ctx context.Context, username string) (userrepo.User, provisionState, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil && u.PasswordHash != "":
		return u, provisionComplete, nil
	case err == nil:
		return u, provisionIncomplete, nil
	case errors.Is(err, userrepo.ErrNotFound):
		return userrepo.User{}, provisionNone, nil
	default:
		return userrepo.User{}, provisionNone, err
	}
}

func invalidCredentials() *Error {
	return &Error{
		Status:  401,
		Code:    "INVALID_CREDENTIALS",
		Message: "username or password is incorrect",
	}
}

func toIdentity(u userrepo.User) domain.Identity {
	hist := make([]domain.LoginRecord, len(u.LoginHistory))
	copy(hist, u.LoginHistory)
	return domain.Identity{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Photo:        cloneStringPtr(u.Photo),
		CreatedAt:    u.CreatedAt,
		LoginHistory: hist,
	}
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
