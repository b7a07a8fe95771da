package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// DummyPasswordHash is compared against when no account matches the email so
// unknown and known accounts cost the same bcrypt work. It matches no password.
const DummyPasswordHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

// AuthServiceConfig carries the collaborators of an AuthService. All of them
// are required.
type AuthServiceConfig struct {
	Users   ports.UserDirectory
	Matcher ports.CredentialMatcher
	Issuer  ports.TokenIssuer
	Log     zerolog.Logger
}

// AuthService implements the email/password login use case:
// lookup, verify, issue.
type AuthService struct {
	users   ports.UserDirectory
	matcher ports.CredentialMatcher
	issuer  ports.TokenIssuer
	log     zerolog.Logger
}

// NewAuthService validates the wiring and returns a ready AuthService.
// A missing collaborator yields an error wrapping domain.ErrMisconfigured.
func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	s := &AuthService{
		users:   cfg.Users,
		matcher: cfg.Matcher,
		issuer:  cfg.Issuer,
		log:     cfg.Log,
	}
	if err := s.checkWiring(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AuthService) checkWiring() error {
	switch {
	case s.users == nil:
		return domain.Misconfigured("userDirectory")
	case s.matcher == nil:
		return domain.Misconfigured("credentialMatcher")
	case s.issuer == nil:
		return domain.Misconfigured("tokenIssuer")
	}
	return nil
}

// Authenticate returns an access token for valid credentials. Unknown users
// and wrong passwords both come back as ok == false with a nil error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, bool, error) {
	if email == "" {
		return "", false, &domain.MissingFieldError{Field: "email"}
	}
	if password == "" {
		return "", false, &domain.MissingFieldError{Field: "password"}
	}
	if err := s.checkWiring(); err != nil {
		return "", false, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && user == nil) {
		_, _ = s.matcher.Matches(ctx, password, DummyPasswordHash)
		s.log.Debug().Msg("login rejected: unknown account")
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.Code("AUTH_DIRECTORY_FAILED").
			With("operation", "find user by email").
			Wrap(err)
	}

	matched, err := s.matcher.Matches(ctx, password, user.PasswordHash)
	if err != nil {
		return "", false, oops.Code("AUTH_MATCH_FAILED").
			With("operation", "match credentials").
			With("user_id", user.ID).
			Wrap(err)
	}
	if !matched {
		s.log.Debug().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return "", false, nil
	}

	token, err := s.issuer.Issue(ctx, user.ID)
	if err != nil {
		return "", false, oops.Code("AUTH_ISSUE_FAILED").
			With("operation", "issue token").
			With("user_id", user.ID).
			Wrap(err)
	}
	if token == "" {
		return "", false, oops.Code("AUTH_ISSUE_FAILED").
			With("user_id", user.ID).
			Errorf("token issuer returned an empty token")
	}

	return token, true, nil
}
